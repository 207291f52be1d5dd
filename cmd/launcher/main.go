package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/launcher/internal/app"
	"github.com/studiowebux/launcher/internal/cli"
	"github.com/studiowebux/launcher/internal/tui"
	"github.com/studiowebux/launcher/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Decent launcher - manage game instances, accounts and settings",
	Long: `Decent launcher keeps your game instances, accounts and launcher settings in sync.

Run without arguments to start the TUI, or use a subcommand for scripting.

Examples:
  launcher                                  # Start interactive TUI
  launcher instance create "Survival" -l fabric
  launcher account add Steve
  launcher settings set preferences.ram 6144
  launcher --remote http://host:7420 instance list
  launcher serve --addr :7420               # Expose the local backend`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// Global flags
var (
	flagDataDir string
	flagRemote  string
	flagDebug   bool
	flagOutput  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default $XDG_CONFIG_HOME/decent-launcher)")
	rootCmd.PersistentFlags().StringVar(&flagRemote, "remote", "", "Use the backend server at this URL")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level (mirrored to stderr outside the TUI)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	rootCmd.AddCommand(instanceCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keybindsCmd)
}

// openApp builds the services for a CLI command. The backend is not contacted.
func openApp(ctx context.Context) (*app.App, *cli.Output, error) {
	out, err := cli.NewOutput(os.Stdout, flagOutput)
	if err != nil {
		return nil, nil, err
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stderr)
	a, err := app.New(app.Options{
		DataDir: flagDataDir,
		Remote:  flagRemote,
		Debug:   flagDebug,
		Out:     os.Stderr,
		Prompt: func(context.Context) (string, error) {
			if !cli.IsInteractive() {
				return "", fmt.Errorf("username required (pass it as an argument)")
			}
			return prompter.Text("Username", "")
		},
	})
	if err != nil {
		return nil, nil, err
	}
	return a, out, nil
}

// openRegistries is openApp for commands that read instances or accounts:
// both lists are loaded and an unreachable backend is an error.
func openRegistries(ctx context.Context) (*app.App, *cli.Output, error) {
	a, out, err := openApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := a.Refresh(ctx); err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, out, nil
}

// runTUI starts the interactive TUI
func runTUI() error {
	a, err := app.New(app.Options{
		DataDir:     flagDataDir,
		Remote:      flagRemote,
		Debug:       flagDebug,
		Interactive: true,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(tui.Services{
		Instances: a.Instances,
		Accounts:  a.Accounts,
		Settings:  a.Settings,
		Session:   a.Session,
		Keybinds:  a.Keybinds,
		Toasts:    a.Toasts,
		Notifier:  a.Notifier,
		Activity:  a.Activity,
		Updates:   version.NewChecker(""),
		Logger:    a.Logger.Named("tui"),
		Version:   version.Version,
	})
}

func confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !cli.IsInteractive() {
		return false, fmt.Errorf("refusing to continue without --yes")
	}
	return cli.NewPrompter(os.Stdin, os.Stderr).Confirm(question)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
