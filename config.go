/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	httpPort     int
	port         int
	prefix       string
	profile      bool
	verbose      bool
	version      bool
	writeTimeout time.Duration
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.httpPort < 0 || c.httpPort > 65535 {
		return fmt.Errorf("invalid http port (must be between 0-65535 inclusive): %d", c.httpPort)
	}
	if c.httpPort == c.port {
		return errors.New("--http-port must differ from --port")
	}
	if c.writeTimeout <= 0 {
		return fmt.Errorf("invalid write timeout (must be positive): %s", c.writeTimeout)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MANCALA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "mancala",
		Short:         "A multiplayer mancala server, played over a plain text connection.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServeGame(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: MANCALA_BIND)")
	fs.IntVar(&cfg.httpPort, "http-port", 0, "port for the status page and spectator stream, 0 to disable (env: MANCALA_HTTP_PORT)")
	fs.IntVarP(&cfg.port, "port", "p", 3000, "port to accept players on (env: MANCALA_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all status URLs, for use behind reverse proxy (env: MANCALA_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: MANCALA_PROFILE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: MANCALA_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: MANCALA_VERSION)")
	fs.DurationVar(&cfg.writeTimeout, "write-timeout", 5*time.Second, "time before a stalled player write counts as a disconnect (env: MANCALA_WRITE_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("mancala v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
