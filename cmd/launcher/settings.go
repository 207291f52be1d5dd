package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/launcher/internal/cli"
	"github.com/studiowebux/launcher/internal/settings"
	"github.com/studiowebux/launcher/internal/types"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change launcher settings",
	Long: `Read and change launcher settings.

Settings are addressed by dotted path, e.g. preferences.ram or advanced.javaPath.
Run 'launcher settings list' to see every path.`,
}

var flagTab string

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings with their current value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		fields := settings.Fields()
		if flagTab != "" {
			fields = settings.FieldsForTab(types.SettingsTab(flagTab))
			if len(fields) == 0 {
				return fmt.Errorf("unknown tab %q (use one of %v)", flagTab, types.SettingsTabs)
			}
		}

		values := make([]cli.FieldValue, 0, len(fields))
		for _, f := range fields {
			value, err := a.Settings.Get(f.Path)
			if err != nil {
				return err
			}
			values = append(values, cli.FieldValue{Path: f.Path, Label: f.Label, Tab: string(f.Tab), Value: value})
		}
		return out.Fields(values)
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		value, err := a.Settings.Get(args[0])
		if err != nil {
			return err
		}
		return out.Value(value)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Settings.Set(args[0], args[1]); err != nil {
			return err
		}
		// Close flushes the pending write
		return nil
	},
}

var settingsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the settings document (yaml unless -o json)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if out.Format == cli.FormatJSON {
			return out.Value(a.Settings.Settings())
		}
		return a.Settings.ExportYAML(os.Stdout)
	},
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Apply a YAML settings document; missing keys keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		return a.Settings.ImportYAML(f)
	},
}

var settingsRecommendedRAMCmd = &cobra.Command{
	Use:   "recommended-ram",
	Short: fmt.Sprintf("Allocate the recommended %d MB of RAM", settings.RecommendedRAM),
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Settings.ApplyRecommendedRAM(a.Notifier)
	},
}

func init() {
	settingsListCmd.Flags().StringVar(&flagTab, "tab", "", "Only list one tab")

	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsExportCmd)
	settingsCmd.AddCommand(settingsImportCmd)
	settingsCmd.AddCommand(settingsRecommendedRAMCmd)
}
