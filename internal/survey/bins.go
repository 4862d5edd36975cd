package survey

import "math"

// Bins groups numeric answers into labelled, right-closed intervals (e[i], e[i+1]].
type Bins struct {
	Edges  []float64
	Labels []string
	// IncludeLowest closes the first interval on the left: [e[0], e[1]].
	IncludeLowest bool
	// OpenTop replaces the last edge with the largest observed value.
	OpenTop bool
}

// Resolve fixes an OpenTop upper edge against the observed values. When the data maximum
// does not exceed the previous edge the top interval is dropped.
func (b Bins) Resolve(values []float64) Bins {
	if !b.OpenTop || len(b.Edges) < 2 {
		return b
	}
	hi := math.Inf(-1)
	for _, v := range values {
		if !math.IsNaN(v) && v > hi {
			hi = v
		}
	}
	edges := append([]float64(nil), b.Edges...)
	labels := append([]string(nil), b.Labels...)
	last := len(edges) - 1
	if hi > edges[last-1] {
		edges[last] = hi
	} else {
		edges = edges[:last]
		labels = labels[:len(labels)-1]
	}
	return Bins{Edges: edges, Labels: labels, IncludeLowest: b.IncludeLowest}
}

// Assign returns the label of the interval containing v.
func (b Bins) Assign(v float64) (string, bool) {
	if math.IsNaN(v) {
		return "", false
	}
	for i := 0; i+1 < len(b.Edges) && i < len(b.Labels); i++ {
		lo, hi := b.Edges[i], b.Edges[i+1]
		if v > lo && v <= hi {
			return b.Labels[i], true
		}
		if i == 0 && b.IncludeLowest && v == lo {
			return b.Labels[i], true
		}
	}
	return "", false
}

// Cut labels every valid value; rows that are invalid or outside every interval get "".
func (b Bins) Cut(values []float64, valid []bool) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if i < len(valid) && !valid[i] {
			continue
		}
		if label, ok := b.Assign(v); ok {
			out[i] = label
		}
	}
	return out
}
