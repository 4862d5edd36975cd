package insight

import (
	"fmt"
	"sort"
)

// Count is one category with its number of respondents.
type Count struct {
	Label string
	N     int
}

// Share is a category's percentage of all non-missing answers.
type Share struct {
	Label   string
	Percent float64
}

// DominanceBranch names the rule that produced a dominance sentence.
type DominanceBranch int

const (
	ClearDominance DominanceBranch = iota + 1
	MajorityPreference
	NoClearDominance
	MildTendency
)

func (b DominanceBranch) String() string {
	switch b {
	case ClearDominance:
		return "clear_dominance"
	case MajorityPreference:
		return "majority_preference"
	case NoClearDominance:
		return "no_clear_dominance"
	case MildTendency:
		return "mild_tendency"
	}
	return "unknown"
}

// Dominance describes which category leads a distribution and by how much.
type Dominance struct {
	Shares   []Share
	Top      Share
	Gap      float64
	Branch   DominanceBranch
	Sentence string
}

// ValueCounts counts non-missing labels. The result is ordered by count descending, then
// label ascending.
func ValueCounts(values []string) []Count {
	idx := make(map[string]int)
	var out []Count
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if i, ok := idx[v]; ok {
			out[i].N++
			continue
		}
		idx[v] = len(out)
		out = append(out, Count{Label: v, N: 1})
	}
	sortCounts(out)
	return out
}

func sortCounts(cs []Count) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].N != cs[j].N {
			return cs[i].N > cs[j].N
		}
		return cs[i].Label < cs[j].Label
	})
}

// Shares converts counts into percentages ranked by share. Zero counts are ignored.
func Shares(counts []Count) ([]Share, error) {
	total := 0
	for _, c := range counts {
		if c.N > 0 {
			total += c.N
		}
	}
	if total == 0 {
		return nil, ErrNoObservations
	}
	ranked := make([]Count, 0, len(counts))
	for _, c := range counts {
		if c.N > 0 {
			ranked = append(ranked, c)
		}
	}
	sortCounts(ranked)
	out := make([]Share, len(ranked))
	for i, c := range ranked {
		out[i] = Share{Label: c.Label, Percent: float64(c.N) / float64(total) * 100}
	}
	return out, nil
}

// classifyDominance applies the rules in order; the first match wins.
func classifyDominance(top, gap float64) DominanceBranch {
	switch {
	case gap > 20:
		return ClearDominance
	case top > 50:
		return MajorityPreference
	case gap < 10:
		return NoClearDominance
	default:
		return MildTendency
	}
}

// Dominance classifies a categorical distribution and phrases the result for column.
func (e *Engine) Dominance(counts []Count, column string) (Dominance, error) {
	shares, err := Shares(counts)
	if err != nil {
		return Dominance{}, err
	}
	top := shares[0]
	second := 0.0
	if len(shares) > 1 {
		second = shares[1].Percent
	}
	d := Dominance{
		Shares: shares,
		Top:    top,
		Gap:    top.Percent - second,
	}
	d.Branch = classifyDominance(top.Percent, d.Gap)
	pb := e.phrases
	switch d.Branch {
	case ClearDominance:
		d.Sentence = fmt.Sprintf(pb.ClearDominance, top.Label, column, top.Percent)
	case MajorityPreference:
		d.Sentence = fmt.Sprintf(pb.Majority, top.Label, column)
	case NoClearDominance:
		d.Sentence = fmt.Sprintf(pb.Balanced, column)
	default:
		d.Sentence = fmt.Sprintf(pb.MildTendency, top.Label, column)
	}
	return d, nil
}
