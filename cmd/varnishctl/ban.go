package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrNotURLArray = errors.New("The argument must be a JSON array of URLs")

var (
	// Ban everything underneath the URL's path too
	banRecursive bool
)

var BanCmd = &cobra.Command{
	Use:   "ban <expression>...",
	Short: "Install a ban expression",
	Long: `Install a ban expression on the instance. Cached objects matching
it are invalidated and fetched anew on their next request.

The arguments are joined into one expression:

	varnishctl ban obj.age '>' 3600
`,
	Args: cobra.MinimumNArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		expression := strings.Join(args, " ")

		if err := admin.Ban(expression); err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "expression", expression)
			fmt.Println(doc)
			return nil
		}

		fmt.Println("Banned", expression)

		return nil
	},
}

var BanURLCmd = &cobra.Command{
	Use:   "ban-url <url>",
	Short: "Ban one URL",
	Args:  cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		if err := admin.BanURL(args[0], banRecursive); err != nil {
			return err
		}

		if asJSON {
			doc, _ := sjson.Set("", "url", args[0])
			doc, _ = sjson.Set(doc, "recursive", banRecursive)
			fmt.Println(doc)
			return nil
		}

		fmt.Println("Banned", args[0])

		return nil
	},
}

var BanURLsCmd = &cobra.Command{
	Use:   "ban-urls <json-array>",
	Short: "Ban a list of URLs in one go",
	Long: `Ban a list of URLs in one go. The list is a JSON array:

	varnishctl ban-urls '["http://example.com/a", "http://example.com/b"]'
`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := parseURLArray(args[0])
		if err != nil {
			return err
		}

		admin, err := newAdmin(cmd)
		if err != nil {
			return err
		}
		defer admin.Quit()

		if err := admin.BanURLs(urls, banRecursive); err != nil {
			return err
		}

		if asJSON {
			doc := "[]"
			for _, url := range urls {
				doc, _ = sjson.Set(doc, "-1", url)
			}
			fmt.Println(doc)
			return nil
		}

		fmt.Println("Banned", len(urls), "URLs")

		return nil
	},
}

// parseURLArray reads the ban-urls argument, a JSON array of strings.
func parseURLArray(raw string) ([]string, error) {
	if !gjson.Valid(raw) {
		return nil, ErrNotURLArray
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsArray() {
		return nil, ErrNotURLArray
	}

	entries := parsed.Array()
	urls := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.Type != gjson.String {
			return nil, ErrNotURLArray
		}

		urls = append(urls, entry.String())
	}

	return urls, nil
}

func init() {
	BanURLCmd.Flags().BoolVarP(&banRecursive, "recursive", "r", false, "Ban everything underneath the URL's path too")
	BanURLsCmd.Flags().BoolVarP(&banRecursive, "recursive", "r", false, "Ban everything underneath each URL's path too")

	RootCmd.AddCommand(BanCmd, BanURLCmd, BanURLsCmd)
}
