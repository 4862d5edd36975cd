// Package dataset loads the two OSADA survey tables and keeps them in memory for the
// lifetime of the process.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

var (
	// ErrMissingInput means a required input file does not exist. It is fatal at startup.
	ErrMissingInput = errors.New("required input file missing")
	// ErrNoColumn means a dataset has no column with the requested name.
	ErrNoColumn = errors.New("no such column")
)

// Dataset is an immutable table whose cells are all strings. Accessors return copies.
type Dataset struct {
	Name  string
	Path  string
	df    dataframe.DataFrame
	names []string
	rows  int
}

// New builds a Dataset from a header row followed by data rows of the same width.
func New(name string, records [][]string) (*Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", name)
	}
	d := &Dataset{Name: name, names: append([]string(nil), records[0]...)}
	if len(records) == 1 {
		return d, nil
	}
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("%s: %w", name, df.Err)
	}
	d.df = df
	d.names = df.Names()
	d.rows = df.Nrow()
	return d, nil
}

// Len is the number of data rows.
func (d *Dataset) Len() int { return d.rows }

// Names lists the columns in file order.
func (d *Dataset) Names() []string { return append([]string(nil), d.names...) }

// Has reports whether the dataset has a column called name.
func (d *Dataset) Has(name string) bool {
	for _, n := range d.names {
		if n == name {
			return true
		}
	}
	return false
}

// Values returns the trimmed cells of a column. Missing cells are "".
func (d *Dataset) Values(name string) ([]string, bool) {
	if !d.Has(name) {
		return nil, false
	}
	out := make([]string, d.rows)
	if d.rows == 0 {
		return out, true
	}
	s := d.df.Col(name)
	if s.Err != nil {
		return nil, false
	}
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		v := strings.TrimSpace(el.String())
		if insight.IsMissing(v) {
			continue
		}
		out[i] = v
	}
	return out, true
}

// Numeric coerces a column with ParseNumber.
func (d *Dataset) Numeric(name string) (NumericColumn, error) {
	raw, ok := d.Values(name)
	if !ok {
		return NumericColumn{}, fmt.Errorf("%s: %w: %q", d.Name, ErrNoColumn, name)
	}
	return Coerce(name, raw), nil
}

// withColumn returns a copy of d with values stored under name, replacing any column of that name.
func (d *Dataset) withColumn(name string, values []string) *Dataset {
	out := *d
	if d.rows == 0 {
		if !d.Has(name) {
			out.names = append(d.Names(), name)
		}
		return &out
	}
	out.df = d.df.Mutate(series.New(values, series.String, name))
	out.names = out.df.Names()
	return &out
}

// deriveCohort takes the first two characters of each student ID.
func deriveCohort(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		r := []rune(strings.TrimSpace(id))
		if len(r) == 0 {
			continue
		}
		if len(r) > 2 {
			r = r[:2]
		}
		out[i] = string(r)
	}
	return out
}

// LoadFile reads one dataset from disk.
func LoadFile(path string, opt ReadOptions) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrMissingInput, path, err)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	records, err := ReadRecords(path, opt)
	if err != nil {
		return nil, err
	}
	d, err := New(filepath.Base(path), records)
	if err != nil {
		return nil, err
	}
	d.Path = path
	return d, nil
}

// Bundle is the loaded pair of survey tables. It is read-only and shared by all requests.
type Bundle struct {
	RunID       string
	LoadedAt    time.Time
	Numeric     *Dataset
	Categorical *Dataset
}

// Values looks a column up in the categorical table first, then in the numeric one.
// Both tables are row-aligned by respondent.
func (b *Bundle) Values(name string) ([]string, bool) {
	if v, ok := b.Categorical.Values(name); ok {
		return v, true
	}
	return b.Numeric.Values(name)
}

// Dataset returns the table that holds columns of the given source.
func (b *Bundle) Dataset(src survey.Source) *Dataset {
	if src == survey.Numeric {
		return b.Numeric
	}
	return b.Categorical
}

// Has reports whether either table holds the column.
func (b *Bundle) Has(c survey.Column) bool {
	return b.Categorical.Has(c.Name()) || b.Numeric.Has(c.Name())
}

// Rows is the number of respondents in the categorical table, which defines row alignment.
func (b *Bundle) Rows() int { return b.Categorical.Len() }

// Source names the input files.
type Source struct {
	Dir             string
	NumericFile     string
	CategoricalFile string
	Read            ReadOptions
}

// DefaultSource reads the two CSV exports from the working directory.
func DefaultSource() Source {
	return Source{Dir: ".", NumericFile: "data_numerik.csv", CategoricalFile: "data_kategorikal.csv"}
}

func (s Source) path(file string) string {
	if filepath.IsAbs(file) || s.Dir == "" {
		return file
	}
	return filepath.Join(s.Dir, file)
}

// Load reads both tables and derives the cohort column.
func Load(src Source, log zerolog.Logger) (*Bundle, error) {
	num, err := LoadFile(src.path(src.NumericFile), src.Read)
	if err != nil {
		return nil, err
	}
	cat, err := LoadFile(src.path(src.CategoricalFile), src.Read)
	if err != nil {
		return nil, err
	}
	for _, d := range []*Dataset{num, cat} {
		log.Debug().Str("file", d.Path).Int("rows", d.Len()).Int("columns", len(d.names)).Msg("dataset loaded")
	}
	if num.Len() != cat.Len() {
		log.Warn().Int("numeric_rows", num.Len()).Int("categorical_rows", cat.Len()).Msg("datasets differ in length; rows align by position")
	}
	if ids, ok := cat.Values(survey.StudentID.Name()); ok {
		cat = cat.withColumn(survey.Cohort.Name(), deriveCohort(ids))
	} else {
		log.Info().Str("file", cat.Path).Msg("no student ID column; cohort views disabled")
	}
	return &Bundle{
		RunID:       uuid.NewString(),
		LoadedAt:    time.Now(),
		Numeric:     num,
		Categorical: cat,
	}, nil
}

// Store loads the Bundle at most once per process.
type Store struct {
	src    Source
	log    zerolog.Logger
	once   sync.Once
	bundle *Bundle
	err    error
}

func NewStore(src Source, log zerolog.Logger) *Store {
	return &Store{src: src, log: log}
}

// Load returns the memoized Bundle, or the error of the first attempt.
func (s *Store) Load() (*Bundle, error) {
	s.once.Do(func() {
		s.bundle, s.err = Load(s.src, s.log)
	})
	return s.bundle, s.err
}
