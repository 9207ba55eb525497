package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VersionInfo carries build metadata injected through ldflags.
type VersionInfo struct {
	Version string
	Commit  string
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(cmd.Root().Version)
		},
	}
}
