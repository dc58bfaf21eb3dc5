package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var (
	// Name to load the configuration under; empty generates one
	vclName string

	// Activate the configuration right after loading it
	vclActivate bool
)

var VclCmd = &cobra.Command{
	Use:   "vcl",
	Short: "Manage the VCL configurations of the instance",
}

var VclListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configurations the instance knows",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		list, err := admin.ListVCLs()
		if err != nil {
			return err
		}

		if asJSON {
			doc := "[]"
			for _, vcl := range list {
				entry, _ := sjson.Set("", "name", vcl.Name)
				entry, _ = sjson.Set(entry, "active", vcl.Active)
				doc, _ = sjson.SetRaw(doc, "-1", entry)
			}
			fmt.Println(doc)
			return nil
		}

		for _, vcl := range list {
			state := "available"
			if vcl.Active {
				state = "active"
			}
			fmt.Printf("%-10s %s\n", state, vcl.Name)
		}

		return nil
	},
}

var VclShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the source of a configuration",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		source, err := admin.GetVCL(args[0])
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "name", args[0])
			doc, _ = sjson.Set(doc, "source", source)
			fmt.Println(doc)
			return nil
		}

		fmt.Print(source)

		return nil
	},
}

var VclActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Print the source of the active configuration",
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		source, found, err := admin.ActiveVCL()
		if err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "active", found)
			if found {
				doc, _ = sjson.Set(doc, "source", source)
			}
			fmt.Println(doc)
			return nil
		}

		if !found {
			fmt.Println("No configuration is active")
			return nil
		}

		fmt.Print(source)

		return nil
	},
}

var VclLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a configuration from a server side file or stdin",
	Long: `Load a configuration into the instance.

The file path is resolved by varnishd itself, so it must name a file
readable on the server. Pass - to read the source from stdin instead;
it is then sent inline over the management connection.

Without --name a free name is generated from the configurations the
instance already knows.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		var name string

		switch {
		case args[0] == "-":
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("Failed to read the configuration from stdin: %w", err)
			}

			if name, err = admin.LoadVCLFromConfiguration(string(raw), vclName); err != nil {
				return err
			}

			if vclActivate {
				if err := admin.UseVCL(name); err != nil {
					return err
				}
			}
		case vclActivate:
			if name, err = admin.LoadAndUseVCLFromFile(args[0], vclName); err != nil {
				return err
			}
		default:
			if name, err = admin.LoadVCLFromFile(args[0], vclName); err != nil {
				return err
			}
		}

		if asJSON {
			doc, _ := sjson.Set("", "name", name)
			doc, _ = sjson.Set(doc, "active", vclActivate)
			fmt.Println(doc)
			return nil
		}

		if vclActivate {
			fmt.Println("Loaded and activated as", name)
		} else {
			fmt.Println("Loaded as", name)
		}

		return nil
	},
}

var VclUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Activate a configuration",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		if err := admin.UseVCL(args[0]); err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "name", args[0])
			doc, _ = sjson.Set(doc, "active", true)
			fmt.Println(doc)
			return nil
		}

		fmt.Println("Activated", args[0])

		return nil
	},
}

var VclDiscardCmd = &cobra.Command{
	Use:   "discard <name>",
	Short: "Unload a configuration",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		if err := admin.DiscardVCL(args[0]); err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "name", args[0])
			doc, _ = sjson.Set(doc, "discarded", true)
			fmt.Println(doc)
			return nil
		}

		fmt.Println("Discarded", args[0])

		return nil
	},
}

func init() {
	flags := VclLoadCmd.Flags()

	flags.StringVar(&vclName, "name", "", "The name to load the configuration under")
	flags.BoolVar(&vclActivate, "use", false, "Activate the configuration right after loading")

	VclCmd.AddCommand(VclListCmd, VclShowCmd, VclActiveCmd, VclLoadCmd, VclUseCmd, VclDiscardCmd)
	RootCmd.AddCommand(VclCmd)
}
