// Package app wires the launcher services together. Every front end (the
// TUI, the CLI commands and the backend server) starts from an App.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/studiowebux/launcher/internal/account"
	"github.com/studiowebux/launcher/internal/activity"
	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/backend/local"
	"github.com/studiowebux/launcher/internal/backend/rpc"
	"github.com/studiowebux/launcher/internal/config"
	"github.com/studiowebux/launcher/internal/instance"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/logging"
	"github.com/studiowebux/launcher/internal/notify"
	"github.com/studiowebux/launcher/internal/session"
	"github.com/studiowebux/launcher/internal/settings"
	"go.uber.org/zap"
)

// Options configures New
type Options struct {
	// DataDir overrides the user config directory
	DataDir string
	// Remote is the base URL of a backend server; empty uses the local backend
	Remote string
	Debug  bool

	// Interactive queues notifications as toasts instead of printing them
	Interactive bool
	// Out receives printed notifications (default os.Stderr)
	Out io.Writer

	// Prompt asks for a username when adding an offline account without a login hint
	Prompt func(ctx context.Context) (string, error)
}

// App holds the launcher services
type App struct {
	Paths     *config.Paths
	Logger    *zap.Logger
	Backend   backend.Backend
	Settings  *settings.Store
	Session   *session.Manager
	Activity  *activity.Manager
	Instances *instance.Registry
	Accounts  *account.Registry
	Keybinds  *keybinds.Registry

	// Toasts is set in interactive mode
	Toasts   *notify.Queue
	Notifier notify.Notifier

	closers []func() error
}

// New resolves the data directory and builds every service
func New(opts Options) (*App, error) {
	paths, err := config.Resolve(opts.DataDir)
	if err != nil {
		return nil, err
	}
	if err := paths.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{File: paths.LogFile, Debug: opts.Debug, NoConsole: opts.Interactive})
	if err != nil {
		return nil, err
	}

	a := &App{Paths: paths, Logger: logger}
	a.closers = append(a.closers, closeLog)

	a.Settings = settings.NewStore(paths.SettingsFile, settings.WithLogger(logger.Named("settings")))
	current := a.Settings.Load()
	a.closers = append(a.closers, func() error {
		a.Settings.Close()
		return nil
	})

	a.Session = session.NewManager(paths.UIStateFile, session.WithLogger(logger.Named("session")))
	if err := a.Session.Load(); err != nil {
		// Defaults are in place; a broken file is not fatal
		logger.Warn("failed to load ui state", zap.Error(err))
	}

	a.Activity, err = activity.NewManager(paths.DatabasePath, logger.Named("activity"))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, a.Activity.Close)

	if opts.Interactive {
		a.Toasts = &notify.Queue{Max: 50}
		a.Notifier = notify.Multi{a.Activity, a.Toasts}
	} else {
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		a.Notifier = notify.Multi{a.Activity, notify.NewPrinter(out)}
	}

	if opts.Remote != "" {
		a.Backend = rpc.New(opts.Remote)
		logger.Info("using remote backend", zap.String("url", opts.Remote))
	} else {
		gameDir, err := paths.GameDirectory(current.Advanced.GameDirectory)
		if err != nil {
			logger.Warn("falling back to the default game directory", zap.Error(err))
			gameDir = paths.InstancesDir
		}
		a.Backend = local.New(gameDir, paths.AccountsFile,
			local.WithAuthenticator(&local.OfflineAuthenticator{Prompt: opts.Prompt}),
			local.WithLogger(logger.Named("backend")),
		)
	}

	a.Instances = instance.NewRegistry(a.Backend, a.Notifier, instance.WithLogger(logger.Named("instances")))
	a.Accounts = account.NewRegistry(a.Backend, a.Notifier, logger.Named("accounts"))

	a.Keybinds, err = keybinds.LoadOrDefault(paths.KeybindsFile)
	if err != nil {
		logger.Warn("using default keybindings", zap.Error(err))
		a.Keybinds = keybinds.NewDefaultRegistry()
	}

	return a, nil
}

// Refresh loads instances and accounts from the backend
func (a *App) Refresh(ctx context.Context) error {
	return errors.Join(a.Instances.Refresh(ctx), a.Accounts.Refresh(ctx))
}

// Close flushes settings and releases the database and log file, newest first
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
