package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var StartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the cache child process",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		started, err := admin.Start()
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "started", started)
			fmt.Println(doc)
			return nil
		}

		if started {
			fmt.Println("Child started")
		} else {
			fmt.Println("Child was already running")
		}

		return nil
	},
}

var StopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the cache child process",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		stopped, err := admin.Stop()
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "stopped", stopped)
			fmt.Println(doc)
			return nil
		}

		if stopped {
			fmt.Println("Child stopped")
		} else {
			fmt.Println("Child was not running")
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(StartCmd, StopCmd)
}
