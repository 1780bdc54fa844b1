package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/corey/demoapp/internal/config"
	"github.com/corey/demoapp/internal/version"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "demoapp",
	Short:        "demoapp: demo greeting web server",
	Long:         "Serves <h1>Demo Flask App V2</h1> on GET /. Runs the server when called without a subcommand.",
	Version:      version.String(),
	RunE:         runServe,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	d := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./demoapp.yaml or $HOME/.demoapp/demoapp.yaml)")
	pf.String("host", d.Server.Host, "interface to bind")
	pf.IntP("port", "p", d.Server.Port, "port to listen on")
	pf.String("engine", d.Server.Engine, "server engine: nethttp or fasthttp")
	pf.Bool("debug", d.Debug, "verbose error pages, debug logging and auto-reload (development only)")
	pf.String("log-level", d.Log.Level, "log level: trace, debug, info, warn, error")
	pf.String("log-format", d.Log.Format, "log format: text or json")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves flags, DEMOAPP_* env and the config file for cmd.
// Returns the config file used, if any.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".demoapp"))
	}

	l := config.NewLoader(cfgFile, paths...)
	if err := l.BindFlags(cmd.Flags()); err != nil {
		return nil, "", err
	}
	cfg, err := l.Load()
	if err != nil {
		return nil, "", fmt.Errorf("config: %w", err)
	}
	return cfg, l.ConfigFileUsed(), nil
}
