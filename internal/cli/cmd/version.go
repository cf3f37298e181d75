package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ember/internal/cli/styles"
	"github.com/bnema/ember/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		t := styles.NewTheme()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", t.Highlight.Render(styles.IconFire+" ember"), t.Title.Render(buildInfo.Short()))
		fmt.Fprintf(out, "%s %s\n", t.Subtle.Render("built: "), buildInfo.BuildDate)
		fmt.Fprintf(out, "%s %s\n", t.Subtle.Render("go:    "), buildInfo.GoVersion)
		fmt.Fprintf(out, "%s\n", t.Subtle.Render(build.RepoURL()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
