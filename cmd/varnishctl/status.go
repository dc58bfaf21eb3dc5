package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the cache child process is running",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		running := admin.IsRunning()

		if asJSON {
			doc, _ := sjson.Set("", "running", running)
			fmt.Println(doc)
			return nil
		}

		if running {
			fmt.Println("Child in state running")
		} else {
			fmt.Println("Child in state stopped")
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(StatusCmd)
}
