package gen

import (
	"os"

	"github.com/spf13/cobra"
)

var CompletionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate a bash completion script for varnishctl",
	Long: `Generate a bash completion script for varnishctl on stdout.

Load it into the current shell with

	source <(varnishctl gen completion)
`,
	Args: cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Root().GenBashCompletion(os.Stdout)
	},
}
