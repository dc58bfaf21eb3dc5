package gen

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate distribution artifacts",
	Long:  `Generate distribution artifacts such as man pages and shell completion.`,
}

func init() {
	RootCmd.AddCommand(ManPagesCmd, CompletionCmd)
}
