package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	varnish "github.com/all-ride/ride-lib-varnish"
	"github.com/all-ride/ride-lib-varnish/cmd/varnishctl/gen"
	"github.com/all-ride/ride-lib-varnish/internal/env"
	"github.com/all-ride/ride-lib-varnish/internal/meta"
)

var (
	// The management host to talk to
	host string

	// The management port of the instance
	port int

	// Path to the secret file of the instance, as given to varnishd -S
	secretFile string

	// How long to wait for connects and replies
	timeout time.Duration

	// Log every protocol exchange
	debug bool

	// Render results as JSON
	asJSON bool
)

var RootCmd = &cobra.Command{
	Use:   "varnishctl",
	Short: "Control a varnishd instance over its management port",
	Long: `varnishctl talks to the management port of a running varnishd
instance: child process control, VCL housekeeping, runtime parameters,
panics and cache bans.

Connection settings not given as flags fall back to the VARNISH_*
environment variables, read from .env.local first.

Usage
	varnishctl status
	varnishctl -H cache-01 -S /etc/varnish/secret ban-url -r http://example.com/news
`,
	SilenceUsage: true,
}

func init() {
	flags := RootCmd.PersistentFlags()

	flags.StringVarP(&host, "host", "H", "", "The management host to talk to")
	flags.IntVarP(&port, "port", "p", 0, "The management port of the instance")
	flags.StringVarP(&secretFile, "secret-file", "S", "", "Path to the secret file of the instance")
	flags.DurationVarP(&timeout, "timeout", "t", 0, "How long to wait for connects and replies")
	flags.BoolVar(&debug, "debug", false, "Log every protocol exchange")
	flags.BoolVarP(&asJSON, "json", "j", false, "Render results as JSON")

	info := meta.GetInfo()
	version := info.Version
	if version == "" {
		version = "dev"
	}
	RootCmd.Version = fmt.Sprintf("%s (build %s, %s, %s)", version, info.Build, info.Platform, info.GoVersion)

	RootCmd.AddCommand(gen.RootCmd)
}

// Execute runs the requested command and exits non zero when it fails.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newAdmin builds the session for one invocation. Flags win over the
// environment, the environment wins over the library defaults.
func newAdmin(cmd *cobra.Command) (*varnish.Admin, error) {
	config, err := env.LoadConfig(cmd.Context())
	if err != nil {
		return nil, err
	}

	if host == "" {
		host = config.Host
	}
	if port == 0 {
		port = config.Port
	}
	if timeout == 0 {
		timeout = config.Timeout
	}
	if secretFile == "" {
		secretFile = config.SecretFile
	}
	if config.Debug {
		debug = true
	}

	secret := ""
	if secretFile != "" {
		raw, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("Failed to read the secret file: %w", err)
		}

		// The digest covers the secret byte for byte, a trailing
		// newline included, so the file content is used untrimmed.
		secret = string(raw)
	}

	log := zap.NewNop()
	if debug {
		if log, err = env.MakeLogger(true); err != nil {
			return nil, err
		}
	}

	return varnish.NewAdmin(varnish.Options{
		Host:    host,
		Port:    port,
		Secret:  secret,
		Timeout: timeout,
		Log:     log,
	}), nil
}
