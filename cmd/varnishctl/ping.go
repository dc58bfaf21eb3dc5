package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var PingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the instance answers and report its clock",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		clock, err := admin.Ping()
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "clock", clock)
			fmt.Println(doc)
			return nil
		}

		fmt.Printf("PONG %d\n", clock)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(PingCmd)
}
