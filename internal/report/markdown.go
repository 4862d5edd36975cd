package report

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/utils"
)

// WriteCharts renders every section chart into dir as <section-id>.<format> and records the
// image path on the section. Sections with nothing to draw are skipped.
func (r *Report) WriteCharts(dir string, opt chart.Options) (int, error) {
	if opt.Format == "" {
		opt.Format = chart.PNG
	}
	if err := utils.EnsureDir(dir); err != nil {
		return 0, err
	}
	written := 0
	for i := range r.Pages {
		for j := range r.Pages[i].Sections {
			s := &r.Pages[i].Sections[j]
			if s.Chart == nil {
				continue
			}
			data, err := chart.Bytes(*s.Chart, opt)
			if errors.Is(err, chart.ErrEmpty) {
				continue
			}
			if err != nil {
				return written, fmt.Errorf("%s: %w", s.ID, err)
			}
			name := filepath.Join(dir, s.ID+"."+string(opt.Format))
			if err := utils.SafeWriteFile(name, data); err != nil {
				return written, err
			}
			s.Image = filepath.ToSlash(name)
			written++
		}
	}
	return written, nil
}

// Markdown renders the report as a single Markdown document.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# OSADA Impact Report\n\n")
	fmt.Fprintf(&b, "Run: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated: %s\n", r.Generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "Respondents: %d\n\n", r.Rows)

	b.WriteString("[CONTENTS]\n")
	for _, p := range r.Pages {
		fmt.Fprintf(&b, "- %s: %s\n", p.MenuTitle, p.Title)
	}
	b.WriteString("\n")

	for _, p := range r.Pages {
		p.markdown(&b)
	}
	return b.String()
}

func (p Page) markdown(b *strings.Builder) {
	fmt.Fprintf(b, "## %s: %s\n\n", p.MenuTitle, p.Title)
	if p.Intro != "" {
		fmt.Fprintf(b, "%s\n\n", p.Intro)
	}
	if p.Body != "" {
		fmt.Fprintf(b, "%s\n\n", p.Body)
	}
	if len(p.Metrics) > 0 {
		b.WriteString("[HEADLINE]\n")
		for _, m := range p.Metrics {
			fmt.Fprintf(b, "- %s: %s\n", m.Label, m.Value)
		}
		b.WriteString("\n")
	}
	for _, prof := range p.Profiles {
		b.WriteString(prof.Markdown())
		b.WriteString("\n")
	}
	for _, s := range p.Sections {
		s.markdown(b)
	}
}

func (s Section) markdown(b *strings.Builder) {
	fmt.Fprintf(b, "### %s\n\n", s.Title)
	if s.Note != "" {
		fmt.Fprintf(b, "> Note: %s\n\n", s.Note)
		return
	}
	if s.Image != "" {
		fmt.Fprintf(b, "![%s](%s)\n\n", s.Title, s.Image)
	}
	if s.Table != nil {
		b.WriteString(CrosstabMarkdown(s.Table))
		b.WriteString("\n")
	}
	if s.Narrative != "" {
		fmt.Fprintf(b, "%s\n\n", s.Narrative)
	}
	if s.Insight != "" {
		fmt.Fprintf(b, "Interpretation: %s\n\n", s.Insight)
	}
}

// CrosstabMarkdown renders row percentages as a Markdown table with a count column.
func CrosstabMarkdown(ct *insight.Contingency) string {
	var b strings.Builder
	b.WriteString("|  |")
	for _, c := range ct.Cols {
		fmt.Fprintf(&b, " %s |", cell(c))
	}
	b.WriteString(" n |\n|---|")
	for range ct.Cols {
		b.WriteString("---:|")
	}
	b.WriteString("---:|\n")
	pct := ct.RowPercent()
	totals := ct.RowTotals()
	for i, row := range ct.Rows {
		fmt.Fprintf(&b, "| %s |", cell(row))
		for j := range ct.Cols {
			fmt.Fprintf(&b, " %.1f%% |", pct[i][j])
		}
		fmt.Fprintf(&b, " %d |\n", totals[i])
	}
	return b.String()
}

func cell(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
