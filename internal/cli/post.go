package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/platform"
)

// NewPostCommand creates the post command group.
func NewPostCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Create, endorse, comment on and show posts",
	}

	cmd.AddCommand(newPostCreateCommand(rootOpts))
	cmd.AddCommand(newPostEndorseCommand(rootOpts))
	cmd.AddCommand(newPostCommentCommand(rootOpts))
	cmd.AddCommand(newPostDeleteCommand(rootOpts))
	cmd.AddCommand(newPostShowCommand(rootOpts))
	cmd.AddCommand(newPostTreeCommand(rootOpts))

	return cmd
}

func newPostCreateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <handle> <message>",
		Short: "Create an original post",
		Long: `Create an original post. Messages are 1 to 100 characters.

Example:
  socialgraph post create alice "hello world"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				id, err := p.CreatePost(args[0], args[1])
				if err != nil {
					return nil, err
				}
				return idResult{ID: int64(id), Message: "created post"}, nil
			})
		},
	}
}

func newPostEndorseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "endorse <handle> <id>",
		Short:         "Endorse an original post or comment",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parsePostID(args[1])
			if err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				id, err := p.EndorsePost(args[0], target)
				if err != nil {
					return nil, err
				}
				return idResult{ID: int64(id), Message: "created endorsement"}, nil
			})
		},
	}
}

func newPostCommentCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "comment <handle> <id> <message>",
		Short:         "Reply to an original post or comment",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := parsePostID(args[1])
			if err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				id, err := p.CommentPost(args[0], parent, args[2])
				if err != nil {
					return nil, err
				}
				return idResult{ID: int64(id), Message: "created comment"}, nil
			})
		},
	}
}

func newPostDeleteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post and everything beneath it",
		Long: `Delete a post. Comments on the post and endorsements of the post
are deleted too, recursively.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				if err := p.DeletePost(id); err != nil {
					return nil, err
				}
				return messageResult{Message: fmt.Sprintf("deleted post %d", id)}, nil
			})
		},
	}
}

func newPostShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a single post",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return opts.withPlatform(cmd, false, func(p *platform.Platform) (any, error) {
				text, err := p.ShowPost(id)
				if err != nil {
					return nil, err
				}
				return textResult{Text: text}, nil
			})
		},
	}
}

func newPostTreeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "tree <id>",
		Short:         "Render a post and its replies",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return opts.withPlatform(cmd, false, func(p *platform.Platform) (any, error) {
				text, err := p.RenderTree(id)
				if err != nil {
					return nil, err
				}
				return textResult{Text: text}, nil
			})
		},
	}
}

func parsePostID(s string) (model.PostID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return model.PostID(n), nil
}
