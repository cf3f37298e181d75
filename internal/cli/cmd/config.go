package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ember/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Print the JSON schema of config.toml, for editor completion and
validation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		schema, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file and database locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		t := a.Theme
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", t.Subtle.Render("config:   "), a.ConfigFile)
		fmt.Fprintf(out, "%s %s\n", t.Subtle.Render("database: "), a.Config.Database.Path)
		fmt.Fprintf(out, "%s %s\n", t.Subtle.Render("site data:"), a.Config.Paths.WebsiteDataDir)
		fmt.Fprintf(out, "%s %s\n", t.Subtle.Render("favicons: "), a.Config.Paths.FaviconDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSchemaCmd, configPathCmd)
}
