package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiowebux/launcher/internal/app"
	"github.com/studiowebux/launcher/internal/backend"
	"github.com/studiowebux/launcher/internal/cli"
	"github.com/studiowebux/launcher/internal/types"
)

var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"accounts", "a"},
	Short:   "Manage accounts",
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts; the active one is marked with *",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return out.Accounts(a.Accounts.Accounts())
	},
}

var accountAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Add an offline account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, out, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if len(args) > 0 {
			ctx = backend.WithLoginHint(ctx, args[0])
		}
		acc, err := a.Accounts.Authenticate(ctx)
		if err != nil {
			return err
		}
		return out.Accounts([]types.AccountSummary{acc})
	},
}

var accountUseCmd = &cobra.Command{
	Use:   "use [username-or-uuid]",
	Short: "Set the active account",
	Long:  "Set the active account. Without an argument, pick one from a list.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var uuid string
		if len(args) > 0 {
			acc, err := findAccount(a, args[0])
			if err != nil {
				return err
			}
			uuid = acc.UUID
		} else {
			if !cli.IsInteractive() {
				return fmt.Errorf("account required")
			}
			choices := make([]cli.Choice, 0, len(a.Accounts.Accounts()))
			for _, acc := range a.Accounts.Accounts() {
				choices = append(choices, cli.Choice{Value: acc.UUID, Label: acc.Username, Active: acc.IsActive})
			}
			if uuid, err = cli.Select("Select account", choices); err != nil {
				return err
			}
		}

		return a.Accounts.SetActive(cmd.Context(), uuid)
	},
}

var accountRemoveCmd = &cobra.Command{
	Use:     "remove <username-or-uuid>",
	Aliases: []string{"rm"},
	Short:   "Sign an account out",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, _, err := openRegistries(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		acc, err := findAccount(a, args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(fmt.Sprintf("Sign %s out?", acc.Username), flagYes)
		if err != nil || !ok {
			return err
		}
		return a.Accounts.Remove(cmd.Context(), acc.UUID)
	},
}

func init() {
	accountRemoveCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")

	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountUseCmd)
	accountCmd.AddCommand(accountRemoveCmd)
}

// findAccount resolves a uuid or a username (case-insensitive)
func findAccount(a *app.App, ref string) (types.AccountSummary, error) {
	for _, acc := range a.Accounts.Accounts() {
		if acc.UUID == ref || sameName(acc.Username, ref) {
			return acc, nil
		}
	}
	return types.AccountSummary{}, fmt.Errorf("account %q not found", ref)
}
