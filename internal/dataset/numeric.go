package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
)

// NumericColumn is a row-aligned numeric view of one column.
type NumericColumn struct {
	Name   string
	Values []float64
	// Valid marks rows that parsed; invalid rows hold NaN.
	Valid []bool
	// Dropped counts non-missing cells that failed to parse.
	Dropped int
}

// Observed returns the parsed values only.
func (n NumericColumn) Observed() []float64 {
	out := make([]float64, 0, len(n.Values))
	for i, v := range n.Values {
		if n.Valid[i] {
			out = append(out, v)
		}
	}
	return out
}

// Coerce parses raw cells into a NumericColumn.
func Coerce(name string, raw []string) NumericColumn {
	nc := NumericColumn{
		Name:   name,
		Values: make([]float64, len(raw)),
		Valid:  make([]bool, len(raw)),
	}
	for i, s := range raw {
		nc.Values[i] = math.NaN()
		if insight.IsMissing(s) {
			continue
		}
		f, ok := ParseNumber(s)
		if !ok {
			nc.Dropped++
			continue
		}
		nc.Values[i] = f
		nc.Valid[i] = true
	}
	return nc
}

// spaceGrouped matches digits grouped in threes by spaces, e.g. "1 000" or "12 500,5".
var spaceGrouped = regexp.MustCompile(`^[-+]?\d{1,3}( \d{3})+([.,]\d+)?$`)

// ParseNumber parses survey answers such as "3", "2,5", "1.000,5", "1 000" or "40%".
//
// A separator that occurs once, with no other separator present, is the decimal separator,
// so "1.000" and "1,000" both parse as 1. When both ',' and '.' appear the last one is the
// decimal separator. A repeated separator, or the earlier of two, groups thousands and must
// be followed by exactly three digits each time. Spaces are accepted only as such grouping;
// any other internal whitespace ("5 10") makes the answer unparseable.
func ParseNumber(s string) (float64, bool) {
	raw := strings.ReplaceAll(s, "%", "")
	raw = strings.ReplaceAll(raw, "\u00a0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		if !spaceGrouped.MatchString(raw) {
			return 0, false
		}
		raw = strings.ReplaceAll(raw, " ", "")
	}

	var dec, thou string
	nc, nd := strings.Count(raw, ","), strings.Count(raw, ".")
	switch {
	case nc > 0 && nd > 0:
		dec, thou = ".", ","
		if strings.LastIndex(raw, ",") > strings.LastIndex(raw, ".") {
			dec, thou = ",", "."
		}
	case nc > 1:
		thou = ","
	case nd > 1:
		thou = "."
	case nc == 1:
		dec = ","
	}

	intPart, frac := raw, ""
	if dec != "" {
		if strings.Count(raw, dec) != 1 {
			return 0, false
		}
		i := strings.LastIndex(raw, dec)
		intPart, frac = raw[:i], raw[i+1:]
		if thou != "" && strings.Contains(frac, thou) {
			return 0, false
		}
	}
	if thou != "" && strings.Contains(intPart, thou) {
		if !groupedByThree(intPart, thou) {
			return 0, false
		}
		intPart = strings.ReplaceAll(intPart, thou, "")
	}
	num := intPart
	if dec != "" {
		num += "." + frac
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func groupedByThree(s, sep string) bool {
	groups := strings.Split(strings.TrimLeft(s, "+-"), sep)
	for i, g := range groups {
		if (i == 0 && (len(g) < 1 || len(g) > 3)) || (i > 0 && len(g) != 3) {
			return false
		}
		for _, r := range g {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
