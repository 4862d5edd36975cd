package insight

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Strength bands for Cramér's V.
const (
	strongV   = 0.5
	moderateV = 0.3
	weakV     = 0.1
)

// Strength is the verbal band of an association.
type Strength int

const (
	NoRelation Strength = iota
	Weak
	Moderate
	Strong
)

func (s Strength) String() string {
	switch s {
	case Strong:
		return "strong"
	case Moderate:
		return "moderate"
	case Weak:
		return "weak"
	}
	return "none"
}

// Association is the bias-corrected Cramér's V of a contingency table.
type Association struct {
	ChiSquare float64
	V         float64
	N         int
	Rows      int
	Cols      int
	Strength  Strength
	Sentence  string
}

// ChiSquare returns Pearson's chi-squared statistic of the table against independence.
// With yates set, 2x2 tables get the continuity correction.
func (c *Contingency) ChiSquare(yates bool) float64 {
	rows, cols := c.RowTotals(), c.ColTotals()
	n := float64(c.n)
	obs := make([]float64, 0, len(rows)*len(cols))
	exp := make([]float64, 0, len(rows)*len(cols))
	correct := yates && len(rows) == 2 && len(cols) == 2
	for i, row := range c.Counts {
		for j, v := range row {
			e := float64(rows[i]) * float64(cols[j]) / n
			o := float64(v)
			if correct {
				d := e - o
				o += math.Copysign(math.Min(0.5, math.Abs(d)), d)
			}
			obs = append(obs, o)
			exp = append(exp, e)
		}
	}
	return stat.ChiSquare(obs, exp)
}

// CramersV computes the bias-corrected Cramér's V (Bergsma 2013) together with the
// chi-squared statistic it was derived from. The result is clamped to [0, 1].
func CramersV(c *Contingency, yates bool) (v, chi2 float64, err error) {
	n := c.N()
	if n <= 1 {
		return 0, 0, ErrInsufficientData
	}
	r, k := c.Dims()
	nf := float64(n)
	rf, kf := float64(r), float64(k)
	rcorr := rf - (rf-1)*(rf-1)/(nf-1)
	kcorr := kf - (kf-1)*(kf-1)/(nf-1)
	denom := math.Min(kcorr-1, rcorr-1)
	if denom <= 0 {
		return 0, 0, ErrNotComputable
	}
	chi2 = c.ChiSquare(yates)
	phi2 := chi2 / nf
	phi2corr := math.Max(0, phi2-(kf-1)*(rf-1)/(nf-1))
	v = math.Sqrt(phi2corr / denom)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, chi2, ErrNotComputable
	}
	return math.Min(v, 1), chi2, nil
}

func classifyStrength(v float64) Strength {
	switch {
	case v > strongV:
		return Strong
	case v > moderateV:
		return Moderate
	case v > weakV:
		return Weak
	default:
		return NoRelation
	}
}

// Association phrases the strength of the relationship in c between columns x and y.
// On error the returned value still carries a sentence naming the failure.
func (e *Engine) Association(c *Contingency, x, y string) (Association, error) {
	r, k := c.Dims()
	a := Association{N: c.N(), Rows: r, Cols: k}
	v, chi2, err := CramersV(c, e.yates)
	switch err {
	case nil:
	case ErrInsufficientData:
		a.Sentence = fmt.Sprintf(e.phrases.Insufficient, x, y)
		return a, err
	default:
		a.Sentence = fmt.Sprintf(e.phrases.NotComputable, x, y)
		return a, err
	}
	a.ChiSquare, a.V = chi2, v
	a.Strength = classifyStrength(v)
	switch a.Strength {
	case Strong:
		a.Sentence = fmt.Sprintf(e.phrases.Strong, x, y)
	case Moderate:
		a.Sentence = fmt.Sprintf(e.phrases.Moderate, x, y)
	case Weak:
		a.Sentence = fmt.Sprintf(e.phrases.Weak, x, y)
	default:
		a.Sentence = fmt.Sprintf(e.phrases.NoRelation, x, y)
	}
	return a, nil
}
