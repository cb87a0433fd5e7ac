package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/socialgraph/internal/platform"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show platform counts and the most endorsed post and account",
		Long: `Show the number of accounts and posts of each kind.

The most endorsed post and account are shown as "-" until at least one
original post or comment exists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withPlatform(cmd, false, func(p *platform.Platform) (any, error) {
				return statsResult{Stats: p.Stats(), Posts: p.CountPosts()}, nil
			})
		},
	}
}

// NewEraseCommand creates the erase command.
func NewEraseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "erase",
		Short: "Remove every account and post",
		Long: `Remove every account and post from the state file.

Ids keep counting from where they were; erased ids are never handed out
again.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				p.ErasePlatform()
				return messageResult{Message: "erased platform"}, nil
			})
		},
	}
}
