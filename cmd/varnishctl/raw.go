package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var RawCmd = &cobra.Command{
	Use:   "raw <command>...",
	Short: "Send a raw management command",
	Long: `Send a raw management command and print the reply without
interpreting the status, for anything this tool has no verb for:

	varnishctl raw backend.list
`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		status, body, err := admin.ExecuteStatus(strings.Join(args, " "))
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "status", status)
			doc, _ = sjson.Set(doc, "body", body)
			fmt.Println(doc)
			return nil
		}

		fmt.Printf("%d\n%s", status, body)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(RawCmd)
}
