package dataset

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}

func writeSurvey(t *testing.T, dir string) {
	t.Helper()
	writeCSV(t, filepath.Join(dir, "data_numerik.csv"), [][]string{
		{survey.WeeklyTaskHours.Name(), survey.SleepLost.Name(), survey.Presentations.Name(), survey.NewFriends.Name()},
		{"3", "2", "0", "12"},
		{"7", "6", "1", "25"},
		{"4,5", "NA", "2", "8"},
		{"banyak", "1", "3", "30"},
	})
	writeCSV(t, filepath.Join(dir, "data_kategorikal.csv"), [][]string{
		{"NPM", survey.TaskDifficulty.Name(), survey.DisciplineImpact.Name(), survey.ActivityAfter.Name()},
		{"2306001", "2", "Membantu", "Aktif"},
		{"2306002", "3", "Sangat Membantu", "Sangat Aktif"},
		{"2406003", "2", "", "Aktif"},
		{"", " 1 ", "Tidak Membantu", "Tidak Aktif"},
	})
}

func TestLoadBundleDerivesCohort(t *testing.T) {
	dir := t.TempDir()
	writeSurvey(t, dir)
	src := DefaultSource()
	src.Dir = dir

	b, err := Load(src, zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.RunID == "" {
		t.Fatalf("expected run id")
	}
	if b.Rows() != 4 || b.Numeric.Len() != 4 {
		t.Fatalf("rows: categorical %d numeric %d", b.Rows(), b.Numeric.Len())
	}
	cohort, ok := b.Values(survey.Cohort.Name())
	if !ok {
		t.Fatalf("cohort column missing; names=%v", b.Categorical.Names())
	}
	want := []string{"23", "23", "24", ""}
	if strings.Join(cohort, ",") != strings.Join(want, ",") {
		t.Fatalf("cohort = %v, want %v", cohort, want)
	}
	if !b.Has(survey.WeeklyTaskHours) || !b.Has(survey.Cohort) || b.Has(survey.OrgMotivation) {
		t.Fatalf("Has reports wrong columns")
	}
	q1, _ := b.Values(survey.TaskDifficulty.Name())
	if q1[3] != "1" {
		t.Fatalf("values must be trimmed, got %q", q1[3])
	}
	q5, _ := b.Values(survey.DisciplineImpact.Name())
	if q5[2] != "" {
		t.Fatalf("missing cell should be empty, got %q", q5[2])
	}
}

func TestLoadWithoutStudentID(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "num.csv"), [][]string{{"a"}, {"1"}})
	writeCSV(t, filepath.Join(dir, "cat.csv"), [][]string{{"b"}, {"x"}})
	b, err := Load(Source{Dir: dir, NumericFile: "num.csv", CategoricalFile: "cat.csv"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Has(survey.Cohort) {
		t.Fatalf("cohort must not be derived without NPM")
	}
}

func TestLoadMissingInput(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, filepath.Join(dir, "data_numerik.csv"), [][]string{{"a"}, {"1"}})
	src := DefaultSource()
	src.Dir = dir
	_, err := Load(src, zerolog.Nop())
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected wrapped fs.ErrNotExist, got %v", err)
	}
}

func TestStoreLoadsOnce(t *testing.T) {
	dir := t.TempDir()
	writeSurvey(t, dir)
	src := DefaultSource()
	src.Dir = dir
	s := NewStore(src, zerolog.Nop())
	first, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "data_numerik.csv")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := s.Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Fatalf("Store must return the memoized bundle")
	}
}

func TestNumericCoercion(t *testing.T) {
	dir := t.TempDir()
	writeSurvey(t, dir)
	d, err := LoadFile(filepath.Join(dir, "data_numerik.csv"), ReadOptions{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	nc, err := d.Numeric(survey.WeeklyTaskHours.Name())
	if err != nil {
		t.Fatalf("Numeric: %v", err)
	}
	if nc.Dropped != 1 {
		t.Fatalf("dropped = %d, want 1", nc.Dropped)
	}
	obs := nc.Observed()
	if len(obs) != 3 || obs[2] != 4.5 {
		t.Fatalf("observed = %v", obs)
	}
	if nc.Valid[3] {
		t.Fatalf("unparseable row must be invalid")
	}
	sleep, _ := d.Numeric(survey.SleepLost.Name())
	if sleep.Dropped != 0 || sleep.Valid[2] {
		t.Fatalf("NA must count as missing, not dropped: %+v", sleep)
	}
	if _, err := d.Numeric("nope"); !errors.Is(err, ErrNoColumn) {
		t.Fatalf("expected ErrNoColumn, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3", 3, true},
		{" 2,5 ", 2.5, true},
		{"1.000,5", 1000.5, true},
		{"1,000.5", 1000.5, true},
		{"40%", 40, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"lima", 0, false},
		{"NaN", 0, false},
		{"5 10", 0, false},
		{"12 15", 0, false},
		{"5\t10", 0, false},
		{"1 000", 1000, true},
		{"12 500,5", 12500.5, true},
		{"-1 234", -1234, true},
		{"1.000", 1, true},
		{"1,000", 1, true},
		{"1.000.000", 1000000, true},
		{"1.000.000,25", 1000000.25, true},
		{"1,00.5", 0, false},
		{"1.2.3,4", 0, false},
		{"2,5,1", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseNumber(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCoerceDropsFreeText(t *testing.T) {
	nc := Coerce("q3", []string{"2", "4", "5 10", "3", ""})
	if nc.Dropped != 1 {
		t.Fatalf("Dropped = %d, want 1", nc.Dropped)
	}
	got := nc.Observed()
	want := []float64{2, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("Observed = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Observed = %v, want %v", got, want)
		}
	}
	if nc.Valid[2] || nc.Valid[4] {
		t.Fatalf("free text and blank rows must be invalid: %v", nc.Valid)
	}
}

func TestReadRecordsTSVAndPadding(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "rows.tsv")
	if err := os.WriteFile(p, []byte("\ufeffa\t b \tc\n1\t2\n3\t4\t5\t6\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := ReadRecords(p, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if strings.Join(recs[0], "|") != "a|b|c" {
		t.Fatalf("header = %q", recs[0])
	}
	if len(recs[1]) != 3 || recs[1][2] != "" {
		t.Fatalf("short row not padded: %q", recs[1])
	}
	if len(recs[2]) != 3 {
		t.Fatalf("long row not truncated: %q", recs[2])
	}
}

func TestHeaderOnlyDataset(t *testing.T) {
	d, err := New("empty.csv", [][]string{{"x", "y"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Len() != 0 || !d.Has("y") {
		t.Fatalf("unexpected dataset: len=%d names=%v", d.Len(), d.Names())
	}
	v, ok := d.Values("x")
	if !ok || len(v) != 0 {
		t.Fatalf("Values = %v, %v", v, ok)
	}
}
