package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var ParamCmd = &cobra.Command{
	Use:   "param",
	Short: "Runtime parameters of the instance",
}

var ParamSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Set a runtime parameter",
	Args:  cobra.ExactArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		if err := admin.SetParameter(args[0], args[1]); err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "name", args[0])
			doc, _ = sjson.Set(doc, "value", args[1])
			fmt.Println(doc)
			return nil
		}

		fmt.Printf("%s = %s\n", args[0], args[1])

		return nil
	},
}

func init() {
	ParamCmd.AddCommand(ParamSetCmd)
	RootCmd.AddCommand(ParamCmd)
}
