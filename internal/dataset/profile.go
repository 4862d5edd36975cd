package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Profile is a per-column summary of one Dataset.
type Profile struct {
	Name    string
	Rows    int
	Cols    []ColumnSummary
	Samples [][]string
	Corr    []PairCorr
}

// ColumnSummary captures the inferred kind and statistics of a column.
type ColumnSummary struct {
	Name    string
	Kind    string // numeric|categorical|text|empty
	NonNull int
	Missing int
	Unique  int
	// Numeric stats
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Outliers by robust z-score (MAD)
	Outliers int
	// Categorical top values
	TopValues []CategoryCount
}

type CategoryCount struct {
	Value string
	Count int
}

// PairCorr is the Pearson correlation of two numeric columns over rows where both parsed.
type PairCorr struct {
	A, B string
	R    float64
	N    int
}

const (
	sampleRows       = 5
	topValues        = 8
	outlierThreshold = 3.5
	maxCategoryLen   = 64
)

// Summarize profiles every column of d.
func Summarize(d *Dataset) *Profile {
	p := &Profile{Name: d.Name, Rows: d.Len()}
	var numeric []NumericColumn
	cols := make([][]string, 0, len(d.names))
	for _, name := range d.names {
		raw, _ := d.Values(name)
		cols = append(cols, raw)
		s, nc := summarizeColumn(name, raw)
		p.Cols = append(p.Cols, s)
		if s.Kind == "numeric" {
			numeric = append(numeric, nc)
		}
	}
	for i := 0; i < d.Len() && i < sampleRows; i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = c[i]
		}
		p.Samples = append(p.Samples, row)
	}
	p.Corr = correlations(numeric)
	return p
}

func summarizeColumn(name string, raw []string) (ColumnSummary, NumericColumn) {
	s := ColumnSummary{Name: name}
	nc := Coerce(name, raw)
	cats := map[string]int{}
	for _, v := range raw {
		if v == "" {
			s.Missing++
			continue
		}
		s.NonNull++
		cats[v]++
	}
	s.Unique = len(cats)
	switch {
	case s.NonNull == 0:
		s.Kind = "empty"
	case nc.Dropped == 0:
		s.Kind = "numeric"
		welford(&s, nc.Observed())
	default:
		s.Kind = "categorical"
		if longest(cats) > maxCategoryLen {
			s.Kind = "text"
		}
		s.TopValues = topCounts(cats, topValues)
	}
	return s, nc
}

// welford fills min, max, mean, sample std and the MAD outlier count.
func welford(s *ColumnSummary, xs []float64) {
	s.Min, s.Max = math.Inf(1), math.Inf(-1)
	var n int
	var mean, m2 float64
	for _, x := range xs {
		n++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - mean
		mean += delta / float64(n)
		m2 += delta * (x - mean)
	}
	s.Mean = mean
	if n > 1 {
		s.Std = math.Sqrt(m2 / float64(n-1))
	}
	if len(xs) < 8 {
		return
	}
	median, mad := medianMAD(xs)
	if mad == 0 {
		return
	}
	for _, v := range xs {
		if math.Abs(0.6745*(v-median)/mad) > outlierThreshold {
			s.Outliers++
		}
	}
}

func longest(cats map[string]int) int {
	n := 0
	for k := range cats {
		if len(k) > n {
			n = len(k)
		}
	}
	return n
}

func topCounts(cats map[string]int, limit int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(cats))
	for k, v := range cats {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	if len(tops) > limit {
		tops = tops[:limit]
	}
	return tops
}

// correlations pairs every numeric column, ordered by |r| descending.
func correlations(cols []NumericColumn) []PairCorr {
	var out []PairCorr
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			a, b := cols[i], cols[j]
			var xs, ys []float64
			for k := 0; k < len(a.Values) && k < len(b.Values); k++ {
				if a.Valid[k] && b.Valid[k] {
					xs = append(xs, a.Values[k])
					ys = append(ys, b.Values[k])
				}
			}
			if len(xs) < 3 {
				continue
			}
			r := stat.Correlation(xs, ys, nil)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				continue
			}
			out = append(out, PairCorr{A: a.Name, B: b.Name, R: math.Max(-1, math.Min(1, r)), N: len(xs)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].R) > math.Abs(out[j].R)
	})
	return out
}

// medianMAD computes the median and the median absolute deviation of vals.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := append([]float64(nil), vals...)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return median, mad
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo, hi := int(math.Floor(pos)), int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Markdown renders the profile in the bracketed-section layout used by the report.
func (p *Profile) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	fmt.Fprintf(&b, "File: %s\n", p.Name)
	fmt.Fprintf(&b, "Rows: %d\n", p.Rows)
	fmt.Fprintf(&b, "Columns: %d\n\n", len(p.Cols))

	b.WriteString("[SCHEMA]\n")
	for _, c := range p.Cols {
		total := c.NonNull + c.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(c.Missing) * 100 / float64(total)
		}
		fmt.Fprintf(&b, "- %s: %s (non-null %d, missing %.1f%%)", safeName(c.Name), c.Kind, c.NonNull, missPct)
		switch c.Kind {
		case "numeric":
			fmt.Fprintf(&b, "; min %.4g, max %.4g, mean %.4g, std %.4g", c.Min, c.Max, c.Mean, c.Std)
			if c.Outliers > 0 {
				fmt.Fprintf(&b, "; outliers: %d above |z|>%.1f", c.Outliers, outlierThreshold)
			}
		case "categorical", "text":
			if len(c.TopValues) > 0 {
				b.WriteString("; top: ")
				for i, kv := range c.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					fmt.Fprintf(&b, "%s(%d)", safeVal(kv.Value), kv.Count)
				}
				if c.Unique > len(c.TopValues) {
					fmt.Fprintf(&b, "; unique=%d", c.Unique)
				}
			}
		}
		b.WriteString("\n")
	}
	if len(p.Corr) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, pc := range p.Corr {
			fmt.Fprintf(&b, "- %s ~ %s: r=%.3f (n=%d)\n", pc.A, pc.B, pc.R, pc.N)
		}
	}
	if len(p.Samples) > 0 {
		b.WriteString("\n[HEAD AND SAMPLE ROWS]\n| ")
		for i, c := range p.Cols {
			if i > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(safeVal(safeName(c.Name)))
		}
		b.WriteString(" |\n|")
		for range p.Cols {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
		for _, row := range p.Samples {
			b.WriteString("| ")
			for i, val := range row {
				if i > 0 {
					b.WriteString(" | ")
				}
				if len(val) > 80 {
					val = val[:77] + "..."
				}
				b.WriteString(safeVal(val))
			}
			b.WriteString(" |\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
