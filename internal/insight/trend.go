package insight

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// A left tail (negative skew) means answers pile up at the high end of the scale.
const (
	skewHigh = 0.5
	skewLow  = -0.5
)

// TrendDirection is the side a numeric distribution leans toward.
type TrendDirection int

const (
	Balanced TrendDirection = iota
	LeansHigh
	LeansLow
)

func (d TrendDirection) String() string {
	switch d {
	case LeansHigh:
		return "high"
	case LeansLow:
		return "low"
	}
	return "balanced"
}

// Trend summarises the skew of a column after numeric coercion.
type Trend struct {
	Skewness  float64
	Kept      int
	Dropped   int
	Direction TrendDirection
	Sentence  string
}

// IsMissing reports whether a raw cell counts as no answer.
func IsMissing(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "NaN", "nan", "<nil>":
		return true
	}
	return false
}

// ParseStrict parses a plain decimal number. It is the default coercion of an Engine.
func ParseStrict(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Coerce parses every non-missing value with parse. Values that fail are counted in dropped.
func Coerce(values []string, parse func(string) (float64, bool)) (kept []float64, dropped int) {
	kept = make([]float64, 0, len(values))
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		f, ok := parse(v)
		if !ok {
			dropped++
			continue
		}
		kept = append(kept, f)
	}
	return kept, dropped
}

// Skewness is the adjusted Fisher-Pearson coefficient of xs.
func Skewness(xs []float64) (float64, error) {
	if len(xs) < 3 {
		return 0, ErrTooFewValues
	}
	s := stat.Skew(xs, nil)
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, ErrDegenerate
	}
	return s, nil
}

func classifyTrend(skew float64) TrendDirection {
	switch {
	case skew < skewLow:
		return LeansHigh
	case skew > skewHigh:
		return LeansLow
	default:
		return Balanced
	}
}

// Trend coerces values to numbers, measures skewness and phrases the direction for column.
func (e *Engine) Trend(values []string, column string) (Trend, error) {
	kept, dropped := Coerce(values, e.parse)
	t := Trend{Kept: len(kept), Dropped: dropped}
	skew, err := Skewness(kept)
	if err != nil {
		return t, err
	}
	t.Skewness = skew
	t.Direction = classifyTrend(skew)
	switch t.Direction {
	case LeansHigh:
		t.Sentence = fmt.Sprintf(e.phrases.SkewHigh, column)
	case LeansLow:
		t.Sentence = fmt.Sprintf(e.phrases.SkewLow, column)
	default:
		t.Sentence = fmt.Sprintf(e.phrases.SkewBalanced, column)
	}
	return t, nil
}
