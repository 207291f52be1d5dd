package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/launcher/internal/activity"
	"github.com/studiowebux/launcher/internal/backend/server"
	"github.com/studiowebux/launcher/internal/cli"
	"github.com/studiowebux/launcher/internal/keybinds"
	"github.com/studiowebux/launcher/internal/version"
)

var (
	flagLimit  int
	flagLevel  string
	flagSource string
)

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"notifications"},
	Short:   "Show the notification history",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.Activity.List(flagLimit, flagLevel, flagSource)
		if err != nil {
			return err
		}
		return out.Activity(entries)
	},
}

var activityClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the notification history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ok, err := confirm("Delete every stored notification?", flagYes)
		if err != nil || !ok {
			return err
		}
		return a.Activity.Clear()
	},
}

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the backend over HTTP for --remote clients",
	Long: `Expose the backend over HTTP.

Clients call POST /invoke/{plugin}/{command} with a JSON body; GET /health answers OK.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintf(os.Stderr, "Serving the backend on %s\n", flagAddr)
		return server.New(a.Backend, a.Logger.Named("server")).ListenAndServe(cmd.Context(), flagAddr)
	},
}

var flagCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the launcher version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.Version)
		if !flagCheck {
			return nil
		}

		update, err := version.NewChecker("").CheckForUpdate(cmd.Context(), version.Version)
		if err != nil {
			return err
		}
		if update.Available {
			fmt.Printf("Version %s is available: %s\n", update.Latest, update.URL)
		} else {
			fmt.Println("You are up to date.")
		}
		return nil
	},
}

var flagSave bool

var keybindsCmd = &cobra.Command{
	Use:   "keybinds",
	Short: "Print the active TUI key bindings as a keybinds.json document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		config := keybinds.ExportConfig(a.Keybinds)
		if flagSave {
			if err := keybinds.SaveConfig(config, a.Paths.KeybindsFile); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved %s\n", a.Paths.KeybindsFile)
			return nil
		}
		if out.Format == cli.FormatText {
			out.Format = cli.FormatJSON
		}
		return out.Value(config)
	},
}

func init() {
	activityCmd.Flags().IntVarP(&flagLimit, "limit", "n", activity.DefaultLimit, "Number of entries")
	activityCmd.Flags().StringVar(&flagLevel, "level", "", "Only show one level (success/info/warning/error)")
	activityCmd.Flags().StringVar(&flagSource, "source", "", "Only show one source (instance/account/settings)")
	activityClearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
	activityCmd.AddCommand(activityClearCmd)

	serveCmd.Flags().StringVar(&flagAddr, "addr", "127.0.0.1:7420", "Listen address")
	versionCmd.Flags().BoolVar(&flagCheck, "check", false, "Check GitHub for a newer release")
	keybindsCmd.Flags().BoolVar(&flagSave, "save", false, "Write the bindings to keybinds.json in the data dir")
}
