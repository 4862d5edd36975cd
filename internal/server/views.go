package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/report"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

//go:embed templates/*.html
var templateFS embed.FS

type renderer struct {
	t *template.Template
}

func newRenderer() (*renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &renderer{t: t}, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

type indexView struct {
	Menus []survey.Menu
	RunID string
	Rows  int
}

type tableRow struct {
	Label string
	Cells []string
	N     int
}

type sectionView struct {
	report.Section
	ChartURL string
	Legend   []chart.LegendEntry
	Header   []string
	Rows     []tableRow
}

type choice struct {
	Code     string
	Label    string
	Selected bool
}

type pageView struct {
	Menus    []survey.Menu
	Page     report.Page
	Sections []sectionView
	Profiles []string
	// Crosstab selector state; empty unless the page has a crosstab.
	XChoices []choice
	YChoices []choice
}

func newPageView(p report.Page, x, y survey.Column) pageView {
	v := pageView{Menus: survey.Catalog(), Page: p}
	for _, prof := range p.Profiles {
		v.Profiles = append(v.Profiles, prof.Markdown())
	}
	for _, s := range p.Sections {
		sv := sectionView{Section: s}
		if s.ID == "crosstab" {
			v.XChoices = choices(x, survey.TaskDifficulty)
			v.YChoices = choices(y, survey.DisciplineImpact)
		}
		if s.Chart != nil {
			sv.ChartURL = "/chart/" + s.ID
			if s.ID == "crosstab" {
				sv.ChartURL += pairQuery(x, y)
			}
			sv.Legend = chart.Legend(*s.Chart)
		}
		if s.Table != nil {
			sv.Header = s.Table.Cols
			pct := s.Table.RowPercent()
			totals := s.Table.RowTotals()
			for i, row := range s.Table.Rows {
				tr := tableRow{Label: row, N: totals[i]}
				for j := range s.Table.Cols {
					tr.Cells = append(tr.Cells, fmt.Sprintf("%.1f%%", pct[i][j]))
				}
				sv.Rows = append(sv.Rows, tr)
			}
		}
		v.Sections = append(v.Sections, sv)
	}
	return v
}

func choices(selected, fallback survey.Column) []choice {
	if selected == survey.None {
		selected = fallback
	}
	var out []choice
	for _, c := range survey.CrosstabChoices() {
		out = append(out, choice{Code: c.Code(), Label: c.Short(), Selected: c == selected})
	}
	return out
}

type shareJSON struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

type dominanceJSON struct {
	Branch string      `json:"branch"`
	Top    shareJSON   `json:"top"`
	Gap    float64     `json:"gap"`
	Shares []shareJSON `json:"shares"`
}

type trendJSON struct {
	Skewness  float64 `json:"skewness"`
	Kept      int     `json:"kept"`
	Dropped   int     `json:"dropped"`
	Direction string  `json:"direction"`
}

type relationJSON struct {
	ChiSquare float64 `json:"chi_square"`
	V         float64 `json:"cramers_v"`
	N         int     `json:"n"`
	Strength  string  `json:"strength"`
}

type insightJSON struct {
	Primary   string            `json:"primary"`
	Secondary string            `json:"secondary,omitempty"`
	Text      string            `json:"text"`
	Sentences []string          `json:"sentences"`
	Dominance *dominanceJSON    `json:"dominance,omitempty"`
	Trend     *trendJSON        `json:"trend,omitempty"`
	Relation  *relationJSON     `json:"relation,omitempty"`
	Skipped   map[string]string `json:"skipped,omitempty"`
}

func newInsightJSON(in insight.Insight) insightJSON {
	out := insightJSON{
		Primary:   in.Primary.Code(),
		Text:      in.String(),
		Sentences: in.Sentences(),
		Skipped:   map[string]string{},
	}
	if out.Sentences == nil {
		out.Sentences = []string{}
	}
	if in.Secondary != survey.None {
		out.Secondary = in.Secondary.Code()
	}
	if d := in.Dominance; d != nil {
		dj := &dominanceJSON{Branch: d.Branch.String(), Top: shareJSON{d.Top.Label, d.Top.Percent}, Gap: d.Gap}
		for _, s := range d.Shares {
			dj.Shares = append(dj.Shares, shareJSON{s.Label, s.Percent})
		}
		out.Dominance = dj
	}
	if t := in.Trend; t != nil {
		out.Trend = &trendJSON{Skewness: t.Skewness, Kept: t.Kept, Dropped: t.Dropped, Direction: t.Direction.String()}
	}
	if a := in.Relation; a != nil && in.RelationErr == nil {
		out.Relation = &relationJSON{ChiSquare: a.ChiSquare, V: a.V, N: a.N, Strength: a.Strength.String()}
	}
	for k, err := range map[string]error{"dominance": in.DominanceErr, "trend": in.TrendErr, "relation": in.RelationErr} {
		if err != nil {
			out.Skipped[k] = err.Error()
		}
	}
	if len(out.Skipped) == 0 {
		out.Skipped = nil
	}
	return out
}
