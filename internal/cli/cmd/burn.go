package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/ember/internal/cli"
	"github.com/bnema/ember/internal/cli/model"
	"github.com/bnema/ember/internal/cli/styles"
)

var (
	burnMetrics  bool
	burnForce    bool
	burnHistory  bool
	burnSiteData bool
	burnChat     bool
	burnDomain   string
	burnSince    time.Duration
)

var burnCmd = &cobra.Command{
	Use:   "burn",
	Short: "Clear browsing data",
	Long: `Clear browsing data for some sites or for everything.

Use --metrics on any burn to print the collected burn metrics afterwards.`,
}

var burnAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Burn every site except fireproof ones",
	Long: `Burn history, and optionally cookies, site data and chat history, of every
site that is not fireproof.

Without --force an interactive dialog lets you pick the data categories
and confirm the burn.`,
	Args: cobra.NoArgs,
	RunE: runBurnAll,
}

var burnDomainsCmd = &cobra.Command{
	Use:   "domains <domain>...",
	Short: "Burn the data of specific sites",
	Long: `Burn the data of the given sites. Each domain is widened to its registrable
domain: "mail.example.com" burns example.com and every sub-domain.
Fireproof sites are skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBurnDomains,
}

var burnVisitsCmd = &cobra.Command{
	Use:   "visits",
	Short: "Burn individual history visits of a site",
	Long: `Remove the visits to a site, optionally only the recent ones. Older visits
to the same site are kept.`,
	Args: cobra.NoArgs,
	RunE: runBurnVisits,
}

var burnChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Burn the chat assistant's history",
	Args:  cobra.NoArgs,
	RunE:  runBurnChat,
}

func init() {
	rootCmd.AddCommand(burnCmd)
	burnCmd.AddCommand(burnAllCmd, burnDomainsCmd, burnVisitsCmd, burnChatCmd)

	burnCmd.PersistentFlags().BoolVar(&burnMetrics, "metrics", false, "print burn metrics after the burn")

	burnAllCmd.Flags().BoolVarP(&burnForce, "force", "f", false, "burn without prompting")
	for _, c := range []*cobra.Command{burnAllCmd, burnDomainsCmd, burnVisitsCmd} {
		c.Flags().BoolVar(&burnSiteData, "site-data", true, "also burn cookies and site data (default from config)")
		c.Flags().BoolVar(&burnChat, "chat", false, "also burn chat history")
	}
	burnDomainsCmd.Flags().BoolVar(&burnHistory, "history", true, "burn history of the sites")

	burnVisitsCmd.Flags().StringVar(&burnDomain, "domain", "", "site whose visits are burned")
	burnVisitsCmd.Flags().DurationVar(&burnSince, "since", 0, "only visits younger than this (e.g. 1h, 24h)")
	_ = burnVisitsCmd.MarkFlagRequired("domain")
}

// selection reads the category flags. --site-data falls back to the
// configured default when not given.
func selection(cmd *cobra.Command, a *cli.App) styles.BurnSelection {
	siteData := a.Config.Fire.ClearSiteData
	if cmd.Flags().Changed("site-data") {
		siteData = burnSiteData
	}
	return styles.BurnSelection{History: burnHistory, SiteData: siteData, ChatHistory: burnChat}
}

func runBurnAll(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	sel := selection(cmd, a)
	sel.History = true

	if burnForce {
		summary, err := a.BurnAll(a.Ctx(), sel)
		return report(cmd.OutOrStdout(), a, summary, err)
	}

	fireproof, err := a.Runtime.Fireproof.FireproofDomains(a.Ctx())
	if err != nil {
		return fmt.Errorf("load fireproof domains: %w", err)
	}
	scope := "Every site"
	if fireproof.Len() > 0 {
		scope = fmt.Sprintf("Every site except %s", strings.Join(fireproof.Sorted(), ", "))
	}

	m := model.NewBurnModel(a.Ctx(), a.Theme, model.BurnModelConfig{
		Title:       "Burn everything",
		Scope:       scope,
		Initial:     sel,
		LockHistory: true,
		Question:    "Burn all browsing data?",
		Run:         a.BurnAll,
	})
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	bm, ok := final.(model.BurnModel)
	if !ok || !bm.Burned() {
		return nil
	}
	if _, burnErr := bm.Result(); burnErr != nil {
		return burnErr
	}
	return writeMetrics(cmd.OutOrStdout(), a)
}

func runBurnDomains(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	summary, err := a.BurnDomains(a.Ctx(), args, selection(cmd, a))
	return report(cmd.OutOrStdout(), a, summary, err)
}

func runBurnVisits(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	summary, err := a.BurnVisits(a.Ctx(), burnDomain, burnSince, selection(cmd, a))
	if errors.Is(err, cli.ErrNoVisits) {
		fmt.Fprintln(cmd.OutOrStdout(), a.Theme.Subtle.Render("No matching visits"))
		return nil
	}
	return report(cmd.OutOrStdout(), a, summary, err)
}

func runBurnChat(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	summary, err := a.BurnChatHistory(a.Ctx())
	return report(cmd.OutOrStdout(), a, summary, err)
}

// report prints the summary of a burn, then the metrics if asked for.
// A summary with no Kind means the burn never started.
func report(w io.Writer, a *cli.App, summary styles.BurnSummary, err error) error {
	if summary.Kind == "" {
		return err
	}
	fmt.Fprintln(w, styles.RenderSummary(a.Theme, summary))
	if err != nil {
		fmt.Fprintln(w, styles.RenderError(a.Theme, err))
	}
	return writeMetrics(w, a)
}

func writeMetrics(w io.Writer, a *cli.App) error {
	if !burnMetrics {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Theme.Subtitle.Render(styles.IconChartLine+" Burn metrics"))
	return a.WriteMetrics(w)
}
