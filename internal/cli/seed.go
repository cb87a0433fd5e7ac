package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/socialgraph/internal/platform"
	"github.com/roach88/socialgraph/internal/seed"
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.cue>",
		Short: "Apply a CUE seed file",
		Long: `Create the accounts and posts described in a CUE seed file.

The file is validated before anything is created. If any account or post
fails, nothing from the file is kept.

Example seed file:
  accounts: [{handle: "alice"}, {handle: "bob"}]
  posts: [
    {ref: "hi", author: "alice", message: "hello"},
    {author: "bob", endorse: "hi"},
  ]`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := seed.Load(args[0])
			if err != nil {
				return rootOpts.formatter(cmd).Fail(err)
			}
			rootOpts.logger().Debug("seed loaded", "file", args[0],
				"accounts", len(s.Accounts), "posts", len(s.Posts))

			return rootOpts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				res, err := seed.Apply(p, s)
				if err != nil {
					return nil, err
				}
				return seedResult{Accounts: res.Accounts, Posts: res.Posts, Refs: res.Refs}, nil
			})
		},
	}
}
