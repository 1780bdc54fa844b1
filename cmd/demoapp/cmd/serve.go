package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/demoapp/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server in the foreground",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, file, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	a, err := app.New(app.Config{Settings: cfg, LogOut: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	if file != "" {
		a.Log.WithField("file", file).Debug("loaded config")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Run(ctx)
}
