package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var PanicCmd = &cobra.Command{
	Use:   "panic",
	Short: "The last panic of the cache child process",
}

var PanicShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the last panic, if there is one",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		message, found, err := admin.GetPanic()
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "panicked", found)
			if found {
				doc, _ = sjson.Set(doc, "message", message)
			}
			fmt.Println(doc)
			return nil
		}

		if !found {
			fmt.Println("The child has not panicked")
			return nil
		}

		fmt.Println(strings.TrimRight(message, "\n"))

		return nil
	},
}

var PanicClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the recorded panic",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		if err := admin.ClearPanic(); err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "cleared", true)
			fmt.Println(doc)
			return nil
		}

		fmt.Println("Panic cleared")

		return nil
	},
}

func init() {
	PanicCmd.AddCommand(PanicShowCmd, PanicClearCmd)
	RootCmd.AddCommand(PanicCmd)
}
