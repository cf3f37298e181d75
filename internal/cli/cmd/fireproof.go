package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ember/internal/cli/styles"
)

var fireproofCmd = &cobra.Command{
	Use:   "fireproof",
	Short: "Manage sites exempted from burning",
	Long: `Fireproof sites keep their history, cookies, permissions and zoom levels
when everything else is burned.`,
}

var fireproofAddCmd = &cobra.Command{
	Use:   "add <domain>...",
	Short: "Fireproof sites",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		for _, d := range args {
			added, err := a.Runtime.Fireproof.Add(a.Ctx(), d)
			if err != nil {
				return fmt.Errorf("fireproof %s: %w", d, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.Theme.Highlight.Render(styles.IconShield), added)
		}
		return nil
	},
}

var fireproofRemoveCmd = &cobra.Command{
	Use:     "remove <domain>...",
	Aliases: []string{"rm"},
	Short:   "Stop fireproofing sites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		for _, d := range args {
			if err := a.Runtime.Fireproof.Remove(a.Ctx(), d); err != nil {
				return fmt.Errorf("remove %s: %w", d, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.Theme.Subtle.Render(styles.IconX), d)
		}
		return nil
	},
}

var fireproofListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List fireproof sites",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		domains, err := a.Runtime.Fireproof.List(a.Ctx())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.RenderFireproofList(a.Theme, domains))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fireproofCmd)
	fireproofCmd.AddCommand(fireproofAddCmd, fireproofRemoveCmd, fireproofListCmd)
}
