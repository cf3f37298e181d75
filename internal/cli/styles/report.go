package styles

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/ember/internal/domain/entity"
)

// StoreCount is the number of entries a store still holds.
type StoreCount struct {
	Label string
	Count int
}

// BurnSummary describes a finished burn.
type BurnSummary struct {
	Kind      string
	Domains   []string
	Duration  time.Duration
	Remaining []StoreCount
	Fireproof []string
}

// RenderSummary formats s for the terminal.
func RenderSummary(t *Theme, s BurnSummary) string {
	lines := []string{
		fmt.Sprintf("%s %s", t.SuccessStyle.Render(IconCheck),
			t.Title.Render(fmt.Sprintf("Burn %q finished in %s", s.Kind, s.Duration.Round(time.Millisecond)))),
	}
	if len(s.Domains) > 0 {
		lines = append(lines, t.Subtle.Render("  burned: "+strings.Join(s.Domains, ", ")))
	}
	if len(s.Fireproof) > 0 {
		lines = append(lines, fmt.Sprintf("  %s %s", t.Highlight.Render(IconShield),
			t.Subtle.Render("kept: "+strings.Join(s.Fireproof, ", "))))
	}
	if len(s.Remaining) > 0 {
		lines = append(lines, "")
		const labelWidth = 16
		for _, c := range s.Remaining {
			lines = append(lines, fmt.Sprintf("  %s %d", t.Subtle.Render(padRight(c.Label, labelWidth)), c.Count))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderError formats err as a single line.
func RenderError(t *Theme, err error) string {
	return fmt.Sprintf("%s %s", t.ErrorStyle.Render(IconX), t.ErrorStyle.Render(err.Error()))
}

// RenderFireproofList lists fireproof sites, oldest first.
func RenderFireproofList(t *Theme, domains []*entity.FireproofDomain) string {
	if len(domains) == 0 {
		return t.Subtle.Render("No fireproof sites")
	}
	const domainWidth = 32
	lines := make([]string, 0, len(domains)+1)
	lines = append(lines, t.BoxHeader.Render(fmt.Sprintf("%s Fireproof sites (%d)", IconShield, len(domains))))
	for _, d := range domains {
		lines = append(lines, fmt.Sprintf("%s %s",
			t.Normal.Render(padRight(d.Domain, domainWidth)),
			t.Subtle.Render(relativeTime(d.AddedAt))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderVisits lists visits, newest first.
func RenderVisits(t *Theme, visits []*entity.Visit) string {
	if len(visits) == 0 {
		return t.Subtle.Render("No history")
	}
	const (
		idWidth     = 7
		domainWidth = 24
		maxURL      = 64
	)
	lines := make([]string, 0, len(visits))
	for _, v := range visits {
		url := v.URL
		if len(url) > maxURL {
			url = url[:maxURL-3] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			t.Subtle.Render(padRight(fmt.Sprintf("#%d", v.ID), idWidth)),
			t.Highlight.Render(padRight(v.Domain, domainWidth)),
			t.Normal.Render(url),
			t.Subtle.Render(relativeTime(v.VisitedAt))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func relativeTime(t time.Time) string {
	diff := time.Since(t)

	const (
		hoursPerDay = 24
		daysPerWeek = 7
	)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < hoursPerDay*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < daysPerWeek*hoursPerDay*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/hoursPerDay))
	default:
		return fmt.Sprintf("%dw ago", int(diff.Hours()/hoursPerDay/daysPerWeek))
	}
}
