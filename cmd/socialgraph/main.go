// Command socialgraph manages a small social network stored in a SQLite
// snapshot file.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/socialgraph/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
