package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/socialgraph/internal/model"
	"github.com/roach88/socialgraph/internal/platform"
)

// AccountOptions holds flags for the account commands.
type AccountOptions struct {
	*RootOptions
	Description string
	ID          int64
}

// NewAccountCommand creates the account command group.
func NewAccountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create, inspect and remove accounts",
	}

	cmd.AddCommand(newAccountCreateCommand(&AccountOptions{RootOptions: rootOpts}))
	cmd.AddCommand(newAccountRemoveCommand(&AccountOptions{RootOptions: rootOpts}))
	cmd.AddCommand(newAccountRenameCommand(rootOpts))
	cmd.AddCommand(newAccountSetDescriptionCommand(rootOpts))
	cmd.AddCommand(newAccountDescribeCommand(rootOpts))
	cmd.AddCommand(newAccountListCommand(rootOpts))

	return cmd
}

func newAccountCreateCommand(opts *AccountOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <handle>",
		Short: "Create an account",
		Long: `Create an account with a unique handle.

Handles are 1 to 30 characters with no whitespace.

Example:
  socialgraph account create alice --description "writes a lot"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				id, err := p.CreateAccount(args[0], opts.Description)
				if err != nil {
					return nil, err
				}
				return idResult{ID: int64(id), Message: "created account"}, nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Description, "description", "", "account description")

	return cmd
}

func newAccountRemoveCommand(opts *AccountOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [handle]",
		Short: "Remove an account and everything it posted",
		Long: `Remove an account by handle or by --id.

Every post the account authored is deleted, together with the comments
and endorsements beneath those posts.

Examples:
  socialgraph account remove alice
  socialgraph account remove --id 3`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			byID := cmd.Flags().Changed("id")
			if byID == (len(args) == 1) {
				return opts.formatter(cmd).Fail(errors.New("give either a handle or --id"))
			}
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				if byID {
					if err := p.RemoveAccountByID(model.AccountID(opts.ID)); err != nil {
						return nil, err
					}
					return messageResult{Message: fmt.Sprintf("removed account %d", opts.ID)}, nil
				}
				if err := p.RemoveAccount(args[0]); err != nil {
					return nil, err
				}
				return messageResult{Message: "removed account " + args[0]}, nil
			})
		},
	}

	cmd.Flags().Int64Var(&opts.ID, "id", 0, "remove the account with this id")

	return cmd
}

func newAccountRenameCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rename <old> <new>",
		Short:         "Change an account's handle",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				if err := p.ChangeHandle(args[0], args[1]); err != nil {
					return nil, err
				}
				return messageResult{Message: fmt.Sprintf("renamed %s to %s", args[0], args[1])}, nil
			})
		},
	}
}

func newAccountSetDescriptionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "set-description <handle> <text>",
		Short:         "Replace an account's description",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPlatform(cmd, true, func(p *platform.Platform) (any, error) {
				if err := p.UpdateDescription(args[0], args[1]); err != nil {
					return nil, err
				}
				return messageResult{Message: "updated description of " + args[0]}, nil
			})
		},
	}
}

func newAccountDescribeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "describe <handle>",
		Short:         "Show an account summary",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPlatform(cmd, false, func(p *platform.Platform) (any, error) {
				return p.DescribeAccount(args[0])
			})
		},
	}
}

func newAccountListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List accounts in id order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withPlatform(cmd, false, func(p *platform.Platform) (any, error) {
				return accountList(p.Accounts()), nil
			})
		},
	}
}
