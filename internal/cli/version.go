package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", orNA(s.info.BuildVersion()))
			fmt.Fprintf(out, "Build date: %s\n", orNA(s.info.BuildDate()))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(s.info.BuildCommit()))
		},
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
