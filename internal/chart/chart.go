// Package chart renders report views to PNG or SVG with go-chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ErrEmpty is returned when a chart has nothing to draw.
var ErrEmpty = errors.New("chart has no data")

// ParseFormat accepts "png" or "svg" (case-insensitive); empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format: %s", s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Slice is one category of a pie or bar chart.
type Slice struct {
	Label string
	Value float64
}

// Stack is one bar of a stacked bar chart. Segments are drawn as shares of the bar total.
type Stack struct {
	Label    string
	Segments []Slice
}

// Spec is a render-ready chart: Slices for pie and bar kinds, Stacks for stacked bars.
type Spec struct {
	Kind   survey.ChartKind
	Title  string
	Slices []Slice
	Stacks []Stack
	// Colors maps a category label to a hex colour without '#'.
	Colors map[string]string
}

// Options controls output size and format.
type Options struct {
	Format Format
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 480
	}
	return w, h
}

var palette = []string{"1F4E79", "6FAED9", "E74C3C", "FADBD8", "27AE60", "F39C12", "8E44AD", "95A5A6"}

// colorer hands out catalogue colours and falls back to the palette by first appearance,
// so a label keeps one colour across every bar of a chart.
type colorer struct {
	fixed map[string]string
	seen  map[string]string
}

func newColorer(fixed map[string]string) *colorer {
	return &colorer{fixed: fixed, seen: map[string]string{}}
}

func (c *colorer) style(label string) chart.Style {
	hex, ok := c.fixed[label]
	if !ok {
		if hex, ok = c.seen[label]; !ok {
			hex = palette[len(c.seen)%len(palette)]
			c.seen[label] = hex
		}
	}
	col := drawing.ColorFromHex(hex)
	return chart.Style{FillColor: col, StrokeColor: col}
}

// Render draws s into w.
func Render(w io.Writer, s Spec, opt Options) error {
	width, height := opt.size()
	format := opt.Format
	if format == "" {
		format = PNG
	}
	var err error
	switch s.Kind {
	case survey.Pie:
		err = renderPie(w, s, width, height, format)
	case survey.Bar:
		err = renderBar(w, s, width, height, format)
	case survey.StackedBar:
		err = renderStacked(w, s, width, height, format)
	default:
		return fmt.Errorf("unknown chart kind: %q", s.Kind)
	}
	if err != nil {
		return fmt.Errorf("chart render failed: %w", err)
	}
	return nil
}

// Bytes renders s into a new buffer.
func Bytes(s Spec, opt Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, s, opt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func positive(slices []Slice) []Slice {
	out := make([]Slice, 0, len(slices))
	for _, sl := range slices {
		if sl.Value > 0 {
			out = append(out, sl)
		}
	}
	return out
}

func renderPie(w io.Writer, s Spec, width, height int, f Format) error {
	slices := positive(s.Slices)
	if len(slices) == 0 {
		return ErrEmpty
	}
	var total float64
	for _, sl := range slices {
		total += sl.Value
	}
	cols := newColorer(s.Colors)
	values := make([]chart.Value, 0, len(slices))
	for _, sl := range slices {
		st := cols.style(sl.Label)
		st.FontColor = drawing.ColorBlack
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.1f%%)", clip(sl.Label), sl.Value/total*100),
			Value: sl.Value,
			Style: st,
		})
	}
	pie := chart.PieChart{
		Title:  s.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}
	return pie.Render(f.provider(), w)
}

func renderBar(w io.Writer, s Spec, width, height int, f Format) error {
	if len(s.Slices) == 0 {
		return ErrEmpty
	}
	var top float64
	for _, sl := range s.Slices {
		if sl.Value > top {
			top = sl.Value
		}
	}
	if top <= 0 {
		return ErrEmpty
	}
	cols := newColorer(s.Colors)
	bars := make([]chart.Value, 0, len(s.Slices))
	for _, sl := range s.Slices {
		bars = append(bars, chart.Value{Label: clip(sl.Label), Value: sl.Value, Style: cols.style(sl.Label)})
	}
	barWidth, spacing := slots(width, len(bars))
	graph := chart.BarChart{
		Title:  s.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(f.provider(), w)
}

func renderStacked(w io.Writer, s Spec, width, height int, f Format) error {
	cols := newColorer(s.Colors)
	var bars []chart.StackedBar
	for _, st := range s.Stacks {
		segs := positive(st.Segments)
		if len(segs) == 0 {
			continue
		}
		var total float64
		for _, sl := range segs {
			total += sl.Value
		}
		values := make([]chart.Value, 0, len(segs))
		for _, sl := range segs {
			label := ""
			if sl.Value/total >= 0.12 {
				label = fmt.Sprintf("%.0f%%", sl.Value/total*100)
			}
			values = append(values, chart.Value{Label: label, Value: sl.Value, Style: cols.style(sl.Label)})
		}
		bars = append(bars, chart.StackedBar{Name: clip(st.Label), Values: values})
	}
	if len(bars) == 0 {
		return ErrEmpty
	}
	barWidth, spacing := slots(width, len(bars))
	for i := range bars {
		bars[i].Width = barWidth
	}
	graph := chart.StackedBarChart{
		Title:  s.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		BarSpacing: spacing,
		Bars:       bars,
	}
	return graph.Render(f.provider(), w)
}

// slots splits the usable width into n bars with 40% spacing.
func slots(width, n int) (int, int) {
	slot := (width - 120) / n
	if slot < 10 {
		slot = 10
	}
	return slot * 6 / 10, slot * 4 / 10
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= 24 {
		return s
	}
	return string(r[:23]) + "…"
}

// Legend lists label/colour pairs in first-appearance order, for callers that draw
// their own legend next to a stacked chart.
func Legend(s Spec) []LegendEntry {
	cols := newColorer(s.Colors)
	var out []LegendEntry
	seen := map[string]bool{}
	add := func(label string) {
		if seen[label] {
			return
		}
		seen[label] = true
		c := cols.style(label).FillColor
		out = append(out, LegendEntry{Label: label, Color: fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)})
	}
	for _, sl := range positive(s.Slices) {
		add(sl.Label)
	}
	for _, st := range s.Stacks {
		for _, sl := range positive(st.Segments) {
			add(sl.Label)
		}
	}
	return out
}

// LegendEntry pairs a category with its colour as #rrggbb.
type LegendEntry struct {
	Label string
	Color string
}
