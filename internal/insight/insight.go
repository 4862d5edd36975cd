// Package insight turns survey answers into short narrative sentences: which category
// dominates a question, which way a scale leans, and how strongly two questions relate.
package insight

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

// Table is the read-only column source the engine interprets. Values returns a copy of the
// named column, row-aligned with every other column of the table.
type Table interface {
	Values(name string) ([]string, bool)
}

// Options configures an Engine.
type Options struct {
	// Language is a BCP 47 tag selecting the phrasebook. Empty means English.
	Language string
	// ContinuityCorrection applies Yates' correction to 2x2 tables.
	ContinuityCorrection bool
	// ParseNumber coerces raw cells for the trend analyzer. Nil means ParseStrict.
	ParseNumber func(string) (float64, bool)
	Logger      *zerolog.Logger
}

// Engine holds the immutable settings shared by every interpretation. It is safe for
// concurrent use.
type Engine struct {
	phrases Phrasebook
	yates   bool
	parse   func(string) (float64, bool)
	log     zerolog.Logger
}

// NewEngine builds an Engine from opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		phrases: PhrasebookFor(opts.Language),
		yates:   opts.ContinuityCorrection,
		parse:   opts.ParseNumber,
		log:     zerolog.Nop(),
	}
	if e.parse == nil {
		e.parse = ParseStrict
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	return e
}

// Phrases returns the phrasebook in use.
func (e *Engine) Phrases() Phrasebook { return e.phrases }

// Insight is the result of one interpretation request. The sentence-bearing fields are
// nil when the analyzer did not run; the matching Err field says why it produced nothing.
type Insight struct {
	Primary   survey.Column
	Secondary survey.Column

	Dominance    *Dominance
	DominanceErr error
	Trend        *Trend
	TrendErr     error
	Relation     *Association
	RelationErr  error
}

// Sentences returns the non-empty sentences in narrative order.
func (in Insight) Sentences() []string {
	var out []string
	if in.Dominance != nil && in.Dominance.Sentence != "" {
		out = append(out, in.Dominance.Sentence)
	}
	if in.Trend != nil && in.Trend.Sentence != "" {
		out = append(out, in.Trend.Sentence)
	}
	if in.Relation != nil && in.Relation.Sentence != "" {
		out = append(out, in.Relation.Sentence)
	}
	return out
}

func (in Insight) String() string { return strings.Join(in.Sentences(), " ") }

// Interpret runs the analyzers for primary and, when secondary is not survey.None, the
// association between the two. Absent columns are skipped, never fatal.
func (e *Engine) Interpret(tbl Table, primary, secondary survey.Column) Insight {
	in := Insight{Primary: primary, Secondary: secondary}
	xs, ok := tbl.Values(primary.Name())
	if !ok {
		in.DominanceErr = ErrColumnAbsent
		in.TrendErr = ErrColumnAbsent
		e.log.Debug().Str("column", primary.Code()).Msg("primary column absent; skipping")
		return in
	}
	label := primary.Name()

	if d, err := e.Dominance(ValueCounts(xs), label); err != nil {
		in.DominanceErr = err
		e.log.Debug().Err(err).Str("column", primary.Code()).Msg("no dominance sentence")
	} else {
		in.Dominance = &d
	}

	t, err := e.Trend(xs, label)
	if err != nil {
		in.TrendErr = err
		e.log.Debug().Err(err).Str("column", primary.Code()).Int("kept", t.Kept).Int("dropped", t.Dropped).Msg("no trend sentence")
	} else {
		in.Trend = &t
	}

	if secondary == survey.None {
		return in
	}
	ys, ok := tbl.Values(secondary.Name())
	if !ok {
		in.RelationErr = ErrColumnAbsent
		e.log.Debug().Str("column", secondary.Code()).Msg("secondary column absent; skipping")
		return in
	}
	a, err := e.Association(NewContingency(xs, ys, nil, nil), label, secondary.Name())
	in.Relation = &a
	if err != nil {
		in.RelationErr = err
		e.log.Debug().Err(err).Str("x", primary.Code()).Str("y", secondary.Code()).Msg("association degraded")
	}
	return in
}

// Overlay layers request-local columns over a shared table without modifying it.
type Overlay struct {
	base  Table
	extra map[string][]string
}

// WithColumns returns an Overlay of base. Extra columns shadow base columns of the same name.
func WithColumns(base Table, extra map[string][]string) *Overlay {
	return &Overlay{base: base, extra: extra}
}

func (o *Overlay) Values(name string) ([]string, bool) {
	if v, ok := o.extra[name]; ok {
		return append([]string(nil), v...), true
	}
	if o.base == nil {
		return nil, false
	}
	return o.base.Values(name)
}

// MapTable is a Table over plain slices.
type MapTable map[string][]string

func (m MapTable) Values(name string) ([]string, bool) {
	v, ok := m[name]
	if !ok {
		return nil, false
	}
	return append([]string(nil), v...), true
}
