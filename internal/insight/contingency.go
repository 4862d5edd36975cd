package insight

import (
	"fmt"
	"sort"
)

// Contingency is a two-way frequency table of row-aligned categorical answers.
// Rows index the x column, Cols the y column.
type Contingency struct {
	Rows   []string
	Cols   []string
	Counts [][]int
	n      int
}

// NewContingency cross-tabulates xs against ys. Pairs where either side is missing are
// dropped. Labels listed in rowOrder and colOrder come first in that order; any others
// follow sorted. Labels with no surviving pair are omitted.
func NewContingency(xs, ys []string, rowOrder, colOrder []string) *Contingency {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	type pair struct{ x, y string }
	pairs := make([]pair, 0, n)
	seenX := map[string]bool{}
	seenY := map[string]bool{}
	for i := 0; i < n; i++ {
		if IsMissing(xs[i]) || IsMissing(ys[i]) {
			continue
		}
		pairs = append(pairs, pair{xs[i], ys[i]})
		seenX[xs[i]] = true
		seenY[ys[i]] = true
	}
	c := &Contingency{
		Rows: orderLabels(seenX, rowOrder),
		Cols: orderLabels(seenY, colOrder),
	}
	ri := indexOf(c.Rows)
	ci := indexOf(c.Cols)
	c.Counts = make([][]int, len(c.Rows))
	for i := range c.Counts {
		c.Counts[i] = make([]int, len(c.Cols))
	}
	for _, p := range pairs {
		c.Counts[ri[p.x]][ci[p.y]]++
	}
	c.n = len(pairs)
	return c
}

func orderLabels(seen map[string]bool, order []string) []string {
	out := make([]string, 0, len(seen))
	used := map[string]bool{}
	for _, l := range order {
		if seen[l] && !used[l] {
			out = append(out, l)
			used[l] = true
		}
	}
	rest := make([]string, 0, len(seen)-len(out))
	for l := range seen {
		if !used[l] {
			rest = append(rest, l)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func indexOf(labels []string) map[string]int {
	m := make(map[string]int, len(labels))
	for i, l := range labels {
		m[l] = i
	}
	return m
}

// N is the number of complete pairs in the table.
func (c *Contingency) N() int { return c.n }

// Dims returns the number of distinct row and column labels.
func (c *Contingency) Dims() (rows, cols int) { return len(c.Rows), len(c.Cols) }

// RowTotals sums each row.
func (c *Contingency) RowTotals() []int {
	out := make([]int, len(c.Rows))
	for i, row := range c.Counts {
		for _, v := range row {
			out[i] += v
		}
	}
	return out
}

// ColTotals sums each column.
func (c *Contingency) ColTotals() []int {
	out := make([]int, len(c.Cols))
	for _, row := range c.Counts {
		for j, v := range row {
			out[j] += v
		}
	}
	return out
}

// RowPercent normalises each row to percentages summing to 100.
func (c *Contingency) RowPercent() [][]float64 {
	totals := c.RowTotals()
	out := make([][]float64, len(c.Counts))
	for i, row := range c.Counts {
		out[i] = make([]float64, len(row))
		if totals[i] == 0 {
			continue
		}
		for j, v := range row {
			out[i][j] = float64(v) / float64(totals[i]) * 100
		}
	}
	return out
}

// TopAverage is the y category with the highest mean row percentage, and the x group
// where that category peaks.
type TopAverage struct {
	Category    string
	MeanPercent float64
	Group       string
	PeakPercent float64
}

// TopAverage finds the column whose row percentages have the largest mean. Ties go to
// the earlier column and the earlier row.
func (c *Contingency) TopAverage() (TopAverage, bool) {
	if len(c.Rows) == 0 || len(c.Cols) == 0 {
		return TopAverage{}, false
	}
	pct := c.RowPercent()
	best, bestMean := 0, -1.0
	for j := range c.Cols {
		sum := 0.0
		for i := range c.Rows {
			sum += pct[i][j]
		}
		mean := sum / float64(len(c.Rows))
		if mean > bestMean {
			best, bestMean = j, mean
		}
	}
	peak, peakPct := 0, -1.0
	for i := range c.Rows {
		if pct[i][best] > peakPct {
			peak, peakPct = i, pct[i][best]
		}
	}
	return TopAverage{
		Category:    c.Cols[best],
		MeanPercent: bestMean,
		Group:       c.Rows[peak],
		PeakPercent: peakPct,
	}, true
}

// Describe phrases the top-average finding for a crosstab of x against y.
func (e *Engine) Describe(c *Contingency, x, y string) (string, bool) {
	top, ok := c.TopAverage()
	if !ok {
		return "", false
	}
	return fmt.Sprintf(e.phrases.TopAverage, y, top.Category, top.MeanPercent, x, top.Group, top.PeakPercent), true
}
