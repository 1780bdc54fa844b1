// Package app wires configuration, logging, the web server and the
// development reloader. It provides lifecycle management: create, start, stop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	fsw "github.com/corey/demoapp/internal/adapters/fsnotify"
	"github.com/corey/demoapp/internal/adapters/web"
	"github.com/corey/demoapp/internal/config"
	"github.com/corey/demoapp/internal/logging"
	"github.com/corey/demoapp/internal/ports"
	"github.com/sirupsen/logrus"
)

// Config holds initialization parameters for the App.
type Config struct {
	Settings *config.Config // required
	LogOut   io.Writer      // default: os.Stderr

	// Watcher overrides the fsnotify watcher used by the reloader.
	Watcher ports.Watcher
	// Restart overrides the process re-exec performed after a reload trigger.
	Restart func() error
}

// App is the top-level container wiring all components together.
type App struct {
	Settings  *config.Config
	Log       *logrus.Logger
	WebServer *web.Server
	Reloader  *Reloader // nil unless debug and reload are both on

	restart  func() error
	stopOnce sync.Once
	stopErr  error
}

// New creates an App with all dependencies wired. Does not start services.
func New(cfg Config) (*App, error) {
	if cfg.Settings == nil {
		return nil, fmt.Errorf("settings required")
	}
	s := cfg.Settings
	if cfg.LogOut == nil {
		cfg.LogOut = os.Stderr
	}
	if cfg.Restart == nil {
		cfg.Restart = reexec
	}

	log, err := logging.New(s.Log, s.Debug, cfg.LogOut)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{
		Settings: s,
		Log:      log,
		restart:  cfg.Restart,
	}

	a.WebServer = web.NewServer(web.Options{
		Host:         s.Server.Host,
		Port:         s.Server.Port,
		Engine:       web.Engine(s.Server.Engine),
		Debug:        s.Debug,
		ReadTimeout:  s.Server.ReadTimeout,
		WriteTimeout: s.Server.WriteTimeout,
		IdleTimeout:  s.Server.IdleTimeout,
		Logger:       log,
	})

	if s.Debug && s.Reload.Enabled {
		watcher := cfg.Watcher
		if watcher == nil {
			fw, err := fsw.NewWatcher()
			if err != nil {
				return nil, fmt.Errorf("create watcher: %w", err)
			}
			watcher = fw
		}
		rl, err := NewReloader(watcher, s.Reload.Paths, log)
		if err != nil {
			watcher.Stop()
			return nil, fmt.Errorf("create reloader: %w", err)
		}
		a.Reloader = rl
	}

	return a, nil
}

// Start binds the listener and, in debug mode, starts the reloader.
func (a *App) Start() error {
	if err := a.WebServer.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	// Reloader is a convenience; serving goes on without it
	if a.Reloader != nil {
		if err := a.Reloader.Start(); err != nil {
			a.Log.WithError(err).Warn("reloader unavailable")
		}
	}
	return nil
}

// Stop shuts everything down within the configured shutdown timeout. Idempotent.
func (a *App) Stop() error {
	a.stopOnce.Do(func() {
		var errs []error
		if a.Reloader != nil {
			if err := a.Reloader.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("stop reloader: %w", err))
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), a.Settings.Server.ShutdownTimeout)
		defer cancel()
		if err := a.WebServer.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop server: %w", err))
		}
		a.stopErr = errors.Join(errs...)
	})
	return a.stopErr
}

// Run starts the app and blocks until ctx is done, the server fails, or
// the reloader fires. A reload stops the app and restarts the process.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		return err
	}
	return a.wait(ctx, a.WebServer.Err())
}

func (a *App) wait(ctx context.Context, serveErr <-chan error) error {
	var reload <-chan string
	if a.Reloader != nil {
		reload = a.Reloader.Changes()
	}

	select {
	case <-ctx.Done():
		a.Log.Info("shutting down")
		return a.Stop()
	case err := <-serveErr:
		return errors.Join(err, a.Stop())
	case path := <-reload:
		a.Log.WithField("path", path).Info("detected change, reloading")
		if err := a.Stop(); err != nil {
			return err
		}
		return a.restart()
	}
}
