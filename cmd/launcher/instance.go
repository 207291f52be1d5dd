package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/launcher/internal/app"
	"github.com/studiowebux/launcher/internal/backend/local"
	"github.com/studiowebux/launcher/internal/catalog"
	"github.com/studiowebux/launcher/internal/cli"
	"github.com/studiowebux/launcher/internal/instance"
	"github.com/studiowebux/launcher/internal/types"
)

var instanceCmd = &cobra.Command{
	Use:     "instance",
	Aliases: []string{"instances", "i"},
	Short:   "Manage game instances",
}

var instanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List instances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return out.Instances(a.Instances.List())
	},
}

var instanceShowCmd = &cobra.Command{
	Use:   "show <name-or-id>",
	Short: "Show one instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		inst, err := findInstance(a, args[0])
		if err != nil {
			return err
		}
		return out.Instance(inst)
	},
}

var instanceFindCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy search instances by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return out.Instances(instance.Search(a.Instances.List(), args[0]))
	},
}

var (
	flagLoader      string
	flagGameVersion string
)

var instanceCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create an instance",
	Long: fmt.Sprintf(`Create an instance.

Without a name you are asked for one, with a random suggestion.
Loaders: %v. Game versions: %v.`, catalog.Loaders, catalog.GameVersions()),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			if !cli.IsInteractive() {
				return fmt.Errorf("instance name required")
			}
			name, err = cli.NewPrompter(os.Stdin, os.Stderr).Text("Name", instance.Placeholder())
			if err != nil {
				return err
			}
		}

		gameVersion := flagGameVersion
		if gameVersion == "" {
			gameVersion = a.Settings.Settings().GameOptions.Version
		}

		inst, err := a.Instances.Create(cmd.Context(), types.InstanceOptions{
			Name:    name,
			Loader:  flagLoader,
			Version: gameVersion,
		})
		if err != nil {
			return err
		}
		return out.Instance(inst)
	},
}

var instanceRenameCmd = &cobra.Command{
	Use:   "rename <name-or-id> <new-name>",
	Short: "Rename an instance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		inst, err := findInstance(a, args[0])
		if err != nil {
			return err
		}
		renamed, err := a.Instances.Rename(cmd.Context(), inst.Identifier, args[1])
		if err != nil {
			return err
		}
		return out.Instance(renamed)
	},
}

var flagYes bool

var instanceRemoveCmd = &cobra.Command{
	Use:     "remove <name-or-id>",
	Aliases: []string{"rm"},
	Short:   "Remove an instance and its folder",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		inst, err := findInstance(a, args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Remove %q and its folder?", inst.Name), flagYes)
		if err != nil || !ok {
			return err
		}
		return a.Instances.Remove(cmd.Context(), inst.Identifier)
	},
}

var flagRemoveIcon bool

var instanceIconCmd = &cobra.Command{
	Use:   "icon <name-or-id> [png-file]",
	Short: "Set or remove the icon of an instance",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !flagRemoveIcon && len(args) != 2 {
			return fmt.Errorf("a PNG file is required (or pass --remove)")
		}

		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		inst, err := findInstance(a, args[0])
		if err != nil {
			return err
		}

		var iconData *string
		if !flagRemoveIcon {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read icon: %w", err)
			}
			dataURL := local.IconDataURL(data)
			iconData = &dataURL
		}

		updated, err := a.Instances.UpdateIcon(cmd.Context(), inst.Identifier, iconData)
		if err != nil {
			return err
		}
		return out.Instance(updated)
	},
}

func init() {
	instanceCreateCmd.Flags().StringVarP(&flagLoader, "loader", "l", catalog.LoaderVanilla, "Mod loader")
	instanceCreateCmd.Flags().StringVarP(&flagGameVersion, "game-version", "g", "", "Game version (default from settings)")
	instanceRemoveCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
	instanceIconCmd.Flags().BoolVar(&flagRemoveIcon, "remove", false, "Remove the icon")

	instanceCmd.AddCommand(instanceListCmd)
	instanceCmd.AddCommand(instanceShowCmd)
	instanceCmd.AddCommand(instanceFindCmd)
	instanceCmd.AddCommand(instanceCreateCmd)
	instanceCmd.AddCommand(instanceRenameCmd)
	instanceCmd.AddCommand(instanceRemoveCmd)
	instanceCmd.AddCommand(instanceIconCmd)
}

// findInstance resolves an identifier or a name (case-insensitive)
func findInstance(a *app.App, ref string) (types.Instance, error) {
	if inst, ok := a.Instances.Get(ref); ok {
		return inst, nil
	}
	for _, inst := range a.Instances.List() {
		if sameName(inst.Name, ref) {
			return inst, nil
		}
	}
	return types.Instance{}, fmt.Errorf("instance %q not found", ref)
}
