// Package report assembles the navigable survey report: one page per catalogue entry, each
// section pairing a chart with its static narrative and the engine's interpretation.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

// ErrNotCrosstab is returned for a crosstab column outside survey.CrosstabChoices.
var ErrNotCrosstab = errors.New("column is not offered in the categorical crosstab")

const noData = "No valid data for this view."

// Options selects the crosstab pair; None falls back to task difficulty against discipline.
type Options struct {
	X, Y survey.Column
	Log  zerolog.Logger
}

// Metric is one headline figure on the overview page.
type Metric struct {
	Label string
	Value string
}

// Section is one chart/narrative pair. A skipped section keeps its title and carries a Note.
type Section struct {
	ID        string
	Title     string
	Chart     *chart.Spec
	Table     *insight.Contingency
	Narrative string
	Insight   string
	Note      string
	// Image is set once the chart has been written to disk.
	Image string
}

// Page is a rendered catalogue page.
type Page struct {
	Menu      string
	MenuTitle string
	Sub       string
	Title     string
	Intro     string
	Body      string
	Metrics   []Metric
	Profiles  []*dataset.Profile
	Sections  []Section
}

// Report is the whole navigable report.
type Report struct {
	RunID     string
	Generated time.Time
	Rows      int
	Pages     []Page
}

// Builder renders catalogue entries against one loaded bundle. It holds no mutable state and
// is safe for concurrent use.
type Builder struct {
	bundle *dataset.Bundle
	engine *insight.Engine
	log    zerolog.Logger
}

func NewBuilder(b *dataset.Bundle, e *insight.Engine, log zerolog.Logger) *Builder {
	return &Builder{bundle: b, engine: e, log: log}
}

// Build renders every page of the catalogue.
func Build(b *dataset.Bundle, e *insight.Engine, opts Options) *Report {
	bd := NewBuilder(b, e, opts.Log)
	r := &Report{RunID: b.RunID, Generated: time.Now(), Rows: b.Rows()}
	for _, m := range survey.Catalog() {
		for _, p := range m.Pages {
			r.Pages = append(r.Pages, bd.Page(m.Title, p, opts.X, opts.Y))
		}
	}
	return r
}

// Page renders one catalogue page. x and y apply to crosstab pages only.
func (bd *Builder) Page(menuTitle string, p survey.Page, x, y survey.Column) Page {
	out := Page{
		Menu:      p.Menu,
		MenuTitle: menuTitle,
		Sub:       p.Sub,
		Title:     p.Title,
		Intro:     p.Intro,
		Body:      p.Body,
	}
	if p.Headline {
		out.Metrics = bd.Headline()
	}
	if p.Profile {
		out.Profiles = []*dataset.Profile{
			dataset.Summarize(bd.bundle.Numeric),
			dataset.Summarize(bd.bundle.Categorical),
		}
	}
	for _, v := range p.Views {
		out.Sections = append(out.Sections, bd.View(v))
	}
	if p.Crosstab {
		s, err := bd.Crosstab(x, y)
		if err != nil {
			s = Section{ID: "crosstab", Title: "Crosstab", Note: err.Error()}
		}
		out.Sections = append(out.Sections, s)
	}
	return out
}

// Headline computes the overview metrics. Metrics whose column is absent are left out.
func (bd *Builder) Headline() []Metric {
	out := []Metric{{Label: "Respondents", Value: strconv.Itoa(bd.bundle.Rows())}}
	if p, ok := bd.positiveShare(survey.DisciplineImpact, survey.PositiveDiscipline); ok {
		out = append(out, Metric{Label: "Say OSADA improved their discipline", Value: fmt.Sprintf("%.1f%%", p)})
	}
	if p, ok := bd.positiveShare(survey.ActivityAfter, survey.PositiveActivity); ok {
		out = append(out, Metric{Label: "Feel more active after OSADA", Value: fmt.Sprintf("%.1f%%", p)})
	}
	if v, ok := bd.bundle.Values(survey.Cohort.Name()); ok {
		out = append(out, Metric{Label: "Cohorts", Value: strconv.Itoa(len(insight.ValueCounts(v)))})
	}
	return out
}

func (bd *Builder) positiveShare(c survey.Column, positive []string) (float64, bool) {
	v, ok := bd.bundle.Values(c.Name())
	if !ok {
		return 0, false
	}
	want := map[string]bool{}
	for _, p := range positive {
		want[p] = true
	}
	total, hit := 0, 0
	for _, cnt := range insight.ValueCounts(v) {
		total += cnt.N
		if want[cnt.Label] {
			hit += cnt.N
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(hit) / float64(total) * 100, true
}

func (bd *Builder) skip(s Section, missing survey.Column) Section {
	bd.log.Warn().Str("section", s.ID).Str("column", missing.Code()).Msg("column absent; section skipped")
	s.Note = fmt.Sprintf("Column %q is not available in the data; section skipped.", missing.Short())
	return s
}

// View renders a catalogue view. Missing columns and empty data produce a Note, not an error.
func (bd *Builder) View(v survey.View) Section {
	s := Section{ID: v.ID, Title: v.Title, Narrative: v.Narrative}
	if v.Bins != nil {
		return bd.banded(v, s)
	}
	xs, ok := bd.bundle.Values(v.Primary.Name())
	if !ok {
		return bd.skip(s, v.Primary)
	}
	switch v.Chart {
	case survey.Pie, survey.Bar:
		spec := chart.Spec{Kind: v.Chart, Title: v.Title, Colors: v.Colors}
		for _, c := range insight.ValueCounts(xs) {
			spec.Slices = append(spec.Slices, chart.Slice{Label: v.Label(c.Label), Value: float64(c.N)})
		}
		if len(spec.Slices) == 0 {
			s.Note = noData
			return s
		}
		s.Chart = &spec
		s.Insight = bd.engine.Interpret(bd.bundle, v.Primary, survey.None).String()
	case survey.StackedBar:
		ys, ok := bd.bundle.Values(v.Segment.Name())
		if !ok {
			return bd.skip(s, v.Segment)
		}
		ct := insight.NewContingency(xs, ys, survey.LevelOrder(v.Primary), survey.LevelOrder(v.Segment))
		if ct.N() == 0 {
			s.Note = noData
			return s
		}
		spec := stacked(v.Title, ct, v.Label, survey.ColorsFor(v.Segment))
		s.Chart, s.Table = &spec, ct
		s.Insight = bd.engine.Interpret(bd.bundle, v.Primary, v.Segment).String()
	}
	return s
}

// banded groups a numeric column into the view's bins and cross-tabulates the bands against
// the segment column. The trend sentence is computed on the raw numbers.
func (bd *Builder) banded(v survey.View, s Section) Section {
	raw, ok := bd.bundle.Values(v.Primary.Name())
	if !ok {
		return bd.skip(s, v.Primary)
	}
	ys, ok := bd.bundle.Values(v.Segment.Name())
	if !ok {
		return bd.skip(s, v.Segment)
	}
	nc := dataset.Coerce(v.Primary.Name(), raw)
	bins := v.Bins.Resolve(nc.Observed())
	bands := align(bins.Cut(nc.Values, nc.Valid), bd.bundle.Rows())
	if nc.Dropped > 0 {
		bd.log.Debug().Str("column", v.Primary.Code()).Int("dropped", nc.Dropped).Msg("unparseable numeric answers ignored")
	}

	ct := insight.NewContingency(bands, ys, bins.Labels, survey.LevelOrder(v.Segment))
	if ct.N() == 0 {
		s.Note = noData
		return s
	}
	spec := stacked(v.Title, ct, v.Label, survey.ColorsFor(v.Segment))
	s.Chart, s.Table = &spec, ct

	tbl := insight.WithColumns(bd.bundle, map[string][]string{v.Band.Name(): bands})
	in := bd.engine.Interpret(tbl, v.Band, v.Segment)
	if t, err := bd.engine.Trend(raw, v.Primary.Name()); err == nil {
		in.Trend, in.TrendErr = &t, nil
	} else {
		in.Trend, in.TrendErr = nil, err
	}
	s.Insight = in.String()
	return s
}

// align pads or truncates a derived column to the respondent count.
func align(col []string, n int) []string {
	if len(col) >= n {
		return col[:n]
	}
	return append(col, make([]string, n-len(col))...)
}

func offered(c survey.Column) bool {
	for _, o := range survey.CrosstabChoices() {
		if o == c {
			return true
		}
	}
	return false
}

// Crosstab renders the categorical pair view for x against y.
func (bd *Builder) Crosstab(x, y survey.Column) (Section, error) {
	if x == survey.None {
		x = survey.TaskDifficulty
	}
	if y == survey.None {
		y = survey.DisciplineImpact
	}
	for _, c := range []survey.Column{x, y} {
		if !offered(c) {
			return Section{}, fmt.Errorf("%w: %s", ErrNotCrosstab, c)
		}
	}
	s := Section{ID: "crosstab", Title: fmt.Sprintf("%s vs %s", x.Short(), y.Short())}
	xs, ok := bd.bundle.Values(x.Name())
	if !ok {
		return bd.skip(s, x), nil
	}
	ys, ok := bd.bundle.Values(y.Name())
	if !ok {
		return bd.skip(s, y), nil
	}
	ct := insight.NewContingency(xs, ys, survey.LevelOrder(x), survey.LevelOrder(y))
	if ct.N() == 0 {
		s.Note = noData
		return s, nil
	}
	spec := stacked(s.Title, ct, nil, survey.ColorsFor(y))
	s.Chart, s.Table = &spec, ct
	s.Narrative, _ = bd.engine.Describe(ct, x.Name(), y.Name())
	s.Insight = bd.engine.Interpret(bd.bundle, x, y).String()
	return s, nil
}

// Distribution renders the answer counts of any column as a bar chart. Numeric answers are
// ordered by value, categorical ones by frequency.
func (bd *Builder) Distribution(c survey.Column) (Section, error) {
	s := Section{ID: "column-" + c.Code(), Title: c.Short()}
	v, ok := bd.bundle.Values(c.Name())
	if !ok {
		return s, fmt.Errorf("%w: %s", dataset.ErrNoColumn, c)
	}
	counts := insight.ValueCounts(v)
	if c.Source() == survey.Numeric {
		sort.SliceStable(counts, func(i, j int) bool {
			a, aok := dataset.ParseNumber(counts[i].Label)
			b, bok := dataset.ParseNumber(counts[j].Label)
			if aok != bok {
				return aok
			}
			return aok && a < b
		})
	}
	if len(counts) == 0 {
		s.Note = noData
		return s, nil
	}
	spec := chart.Spec{Kind: survey.Bar, Title: c.Short(), Colors: survey.ColorsFor(c)}
	for _, cnt := range counts {
		spec.Slices = append(spec.Slices, chart.Slice{Label: cnt.Label, Value: float64(cnt.N)})
	}
	s.Chart = &spec
	s.Insight = bd.engine.Interpret(bd.bundle, c, survey.None).String()
	return s, nil
}

// stacked turns a contingency table into bars per row and segments per column.
func stacked(title string, ct *insight.Contingency, label func(string) string, colors map[string]string) chart.Spec {
	if label == nil {
		label = func(s string) string { return s }
	}
	spec := chart.Spec{Kind: survey.StackedBar, Title: title, Colors: colors}
	for i, row := range ct.Rows {
		st := chart.Stack{Label: label(row)}
		for j, col := range ct.Cols {
			st.Segments = append(st.Segments, chart.Slice{Label: label(col), Value: float64(ct.Counts[i][j])})
		}
		spec.Stacks = append(spec.Stacks, st)
	}
	return spec
}

// Section finds a rendered section by ID.
func (r *Report) Section(id string) (Section, bool) {
	for _, p := range r.Pages {
		for _, s := range p.Sections {
			if s.ID == id {
				return s, true
			}
		}
	}
	return Section{}, false
}
