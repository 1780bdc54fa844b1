package cmd

import (
	"fmt"

	"github.com/corey/demoapp/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "demoapp %s\n", version.Version)
		fmt.Fprintf(out, "Git commit: %s\n", version.Commit)
		fmt.Fprintf(out, "Build date: %s\n", version.Date)
	},
}
