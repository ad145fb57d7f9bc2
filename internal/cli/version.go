package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X".
var (
	Version   = "v0.0.0-dev"
	GitCommit = ""
)

func NewVersionCmd(root *cobra.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   "version",
		Args:  cobra.ExactArgs(0),
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			commit := GitCommit
			if len(commit) > 7 {
				commit = commit[:7]
			}
			out := cmd.OutOrStdout()
			if cmd.Flag("long").Changed {
				fmt.Fprintf(out, "Version: %s GitCommit: %s GoVersion: %s\n", Version, GitCommit, runtime.Version())
			} else {
				fmt.Fprintf(out, "%s+g%s\n", Version, commit)
			}
		},
	}
	root.AddCommand(c)
	c.Flags().Bool("long", false, "Show long version info")
	return c
}
