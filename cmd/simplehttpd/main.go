package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	simplehttpserver "github.com/TomasGlgg/SimpleHTTPserver"
	"github.com/TomasGlgg/SimpleHTTPserver/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "simplehttpd <WORKING DIR> <PORT>",
		Short: "Serve static files from a directory over HTTP/1.1",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}

			_, err := parsePort(args[1])
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// from here on errors are environmental, the usage won't help
			cmd.SilenceUsage = true

			port, _ := parsePort(args[1])
			if err := os.Chdir(args[0]); err != nil {
				return fmt.Errorf("chdir: %w", err)
			}

			return simplehttpserver.
				New(net.JoinHostPort("", strconv.Itoa(int(port)))).
				Tune(cfg).
				Serve()
		},
	}

	cmd.Flags().StringVar(
		&cfg.Log.Format, "log-format", cfg.Log.Format,
		fmt.Sprintf("access log format, either %q or %q", config.LogText, config.LogJSON),
	)

	return cmd
}

func parsePort(arg string) (uint16, error) {
	port, err := strconv.ParseUint(arg, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("bad port %q: %w", arg, err)
	}

	return uint16(port), nil
}
