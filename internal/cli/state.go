package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/socialgraph/internal/platform"
)

// operation runs one platform call and returns the value to print.
type operation func(p *platform.Platform) (any, error)

// withPlatform loads the state file into a fresh platform, runs op and
// prints its result. The snapshot is written back only when mutates is set
// and op succeeded, so a failed command never touches the file.
func (o *RootOptions) withPlatform(cmd *cobra.Command, mutates bool, op operation) error {
	f := o.formatter(cmd)
	ctx := commandContext(cmd)
	logger := o.logger().With("state", o.State)

	p := platform.New(platform.WithLogger(o.logger()))
	if err := loadState(ctx, p, o.State); err != nil {
		return f.Fail(err)
	}

	data, err := op(p)
	if err != nil {
		logger.Debug("operation failed", "command", cmd.CommandPath(), "error", err)
		return f.Fail(err)
	}

	if mutates {
		if err := p.SavePlatform(ctx, o.State); err != nil {
			return f.Fail(err)
		}
		logger.Debug("state saved", "accounts", p.CountAccounts(), "posts", p.CountPosts())
	}
	return f.Success(data)
}

// loadState loads path into p. A missing file means an empty platform.
func loadState(ctx context.Context, p *platform.Platform, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return p.LoadPlatform(ctx, path)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
