package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/ember/internal/cli/styles"
	"github.com/bnema/ember/internal/domain/entity"
	"github.com/bnema/ember/internal/domain/scope"
)

var (
	historyTitle  string
	historyLimit  int
	historyDomain string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Record and inspect browsing history",
}

var historyAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Record a visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		v := entity.NewVisit(args[0], historyTitle)
		if err := a.Runtime.History.Record(a.Ctx(), v); err != nil {
			return err
		}
		a.Runtime.VisitedLinks.Add(v.URL)
		fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", a.Theme.SuccessStyle.Render(styles.IconCheck), v.ID, v.Domain)
		return nil
	},
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent visits",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}

		var visits []*entity.Visit
		if historyDomain != "" {
			domain, derr := scope.ETLDPlusOne(historyDomain)
			if derr != nil {
				return fmt.Errorf("invalid domain %q: %w", historyDomain, derr)
			}
			visits, err = a.Runtime.History.FindByDomain(a.Ctx(), domain)
			if len(visits) > historyLimit {
				visits = visits[:historyLimit]
			}
		} else {
			visits, err = a.Runtime.History.GetRecent(a.Ctx(), historyLimit)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), styles.RenderVisits(a.Theme, visits))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyAddCmd, historyListCmd)

	historyAddCmd.Flags().StringVarP(&historyTitle, "title", "t", "", "page title")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of visits")
	historyListCmd.Flags().StringVarP(&historyDomain, "domain", "d", "", "only visits to this site")
}
