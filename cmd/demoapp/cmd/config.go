package cmd

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/corey/demoapp/internal/config"
	"github.com/spf13/cobra"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved configuration after flags, DEMOAPP_* env and the config file.",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, file, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatConfig(cfg, file))
	return nil
}

// formatConfig renders the resolved configuration for the terminal.
func formatConfig(cfg *config.Config, file string) string {
	var b strings.Builder

	if file == "" {
		file = "(none)"
	}
	debug := fmt.Sprintf("%s✗ off%s", colorGreen, colorReset)
	if cfg.Debug {
		debug = fmt.Sprintf("%s✓ on (development only)%s", colorYellow, colorReset)
	}
	reload := "off"
	if cfg.Debug && cfg.Reload.Enabled {
		reload = "running executable"
		if len(cfg.Reload.Paths) > 0 {
			reload = strings.Join(cfg.Reload.Paths, ", ")
		}
	}

	fmt.Fprintf(&b, "%s⚡ demoapp config%s\n", colorBold, colorReset)
	fmt.Fprintf(&b, "  Config:     %s\n", file)
	fmt.Fprintf(&b, "  Listen:     %s\n", net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)))
	fmt.Fprintf(&b, "  Engine:     %s\n", cfg.Server.Engine)
	fmt.Fprintf(&b, "  Timeouts:   read %s, write %s, idle %s, shutdown %s\n",
		cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout, cfg.Server.ShutdownTimeout)
	fmt.Fprintf(&b, "  Debug:      %s\n", debug)
	fmt.Fprintf(&b, "  Reload:     %s\n", reload)
	fmt.Fprintf(&b, "  Log:        %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	return b.String()
}
