package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"playstore-insights/models"
)

const (
	ansiReset  = "\033[0m"
	ansiTitle  = "\033[1;35m"
	ansiHeader = "\033[1;33m"
)

// Presenter renders a Report as fixed-width console tables.
type Presenter struct {
	// Color enables ANSI escapes around titles and section headers.
	Color bool
}

// NewPresenter creates a Presenter.
func NewPresenter(color bool) *Presenter {
	return &Presenter{Color: color}
}

// Print writes every report table to w in task order.
func (p *Presenter) Print(w io.Writer, r *models.Report) error {
	var b bytes.Buffer

	sep := strings.Repeat("═", 96)
	thin := strings.Repeat("─", 96)

	fmt.Fprintf(&b, "\n%s\n", p.paint(ansiTitle, sep))
	fmt.Fprintf(&b, "%s\n", p.paint(ansiTitle, "  📊 PLAY STORE INSIGHTS"))
	fmt.Fprintf(&b, "%s\n", p.paint(ansiTitle, sep))
	fmt.Fprintf(&b, "  Cleaned apps : %d\n\n", r.TotalApps)

	p.section(&b, thin, fmt.Sprintf("1. Top %d Apps by Reviews", r.TopN))
	writeApps(&b, r.TopByReviews)

	p.section(&b, thin, fmt.Sprintf("2. Top %d Apps by Installs", r.TopN))
	writeApps(&b, r.TopByInstalls)

	p.section(&b, thin, "2. App Type Distribution")
	writeTypes(&b, r.TypeDistribution)

	p.section(&b, thin, "3. Installs by Category")
	writeCategories(&b, r.InstallsByCategory)

	p.section(&b, thin, fmt.Sprintf("4. Top %d Paid Apps by Price", r.TopN))
	writeApps(&b, r.TopPaidByPrice)

	p.section(&b, thin, fmt.Sprintf("5. Top %d Paid Apps by Rating", r.TopN))
	writeApps(&b, r.TopPaidByRating)

	fmt.Fprintf(&b, "%s\n\n", p.paint(ansiTitle, sep))

	_, err := w.Write(b.Bytes())
	if err != nil {
		return fmt.Errorf("presenter: write: %w", err)
	}
	return nil
}

func (p *Presenter) section(b *bytes.Buffer, thin, title string) {
	fmt.Fprintf(b, "%s\n", p.paint(ansiHeader, "  "+title))
	fmt.Fprintf(b, "  %s\n", thin)
}

func (p *Presenter) paint(code, s string) string {
	if !p.Color {
		return s
	}
	return code + s + ansiReset
}

func writeApps(b *bytes.Buffer, apps []*models.App) {
	if len(apps) == 0 {
		fmt.Fprintf(b, "  (no rows)\n\n")
		return
	}

	fmt.Fprintf(b, "  %3s  %-36s %-20s %6s %12s %14s %-5s %8s\n",
		"#", "App", "Category", "Rating", "Reviews", "Installs", "Type", "Price")
	for i, a := range apps {
		fmt.Fprintf(b, "  %3d  %-36s %-20s %6.1f %12d %14d %-5s %8.2f\n",
			i+1, truncate(a.Name, 36), truncate(a.Category, 20),
			a.Rating, a.Reviews, a.Installs, truncate(a.Type, 5), a.Price)
	}
	b.WriteString("\n")
}

func writeTypes(b *bytes.Buffer, dist []models.TypeCount) {
	if len(dist) == 0 {
		fmt.Fprintf(b, "  (no rows)\n\n")
		return
	}

	fmt.Fprintf(b, "  %-10s %10s\n", "Type", "Count")
	for _, tc := range dist {
		fmt.Fprintf(b, "  %-10s %10d\n", truncate(tc.Type, 10), tc.Count)
	}
	b.WriteString("\n")
}

func writeCategories(b *bytes.Buffer, totals []models.CategoryInstalls) {
	if len(totals) == 0 {
		fmt.Fprintf(b, "  (no rows)\n\n")
		return
	}

	fmt.Fprintf(b, "  %-30s %16s\n", "Category", "Installs")
	for _, ci := range totals {
		fmt.Fprintf(b, "  %-30s %16s\n", truncate(ci.Category, 30), strconv.FormatInt(ci.Installs, 10))
	}
	b.WriteString("\n")
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
