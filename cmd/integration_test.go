package cmd

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

// resetFlags restores every flag to its default so bound variables and Changed state do
// not leak between invocations.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(args ...string) (string, error) {
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(args...)
	if err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	t.Cleanup(func() { os.Setenv("HOME", oldHome) })
	os.Setenv("HOME", home)
	return home
}

func writeCSV(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeSurvey writes a six-respondent pair of exports into dir.
func writeSurvey(t *testing.T, dir string) {
	t.Helper()
	writeCSV(t, filepath.Join(dir, "data_kategorikal.csv"), [][]string{
		{survey.StudentID.Name(), survey.TaskDifficulty.Name(), survey.HelpfulActivity.Name(), survey.DisciplineImpact.Name(), survey.ActivityAfter.Name()},
		{"2301", "2", "Wawancara HIMASADA", "Membantu", "Aktif"},
		{"2302", "3", "Penjelasan Materi di kelas", "Membantu", "Aktif"},
		{"2403", "2", "Wawancara HIMASADA", "Sangat Membantu", "Sangat Aktif"},
		{"2404", "1", "Kerja Kelompok terkait Penugasan OSADA", "Membantu", "Tidak Aktif"},
		{"2205", "4", "Wawancara HIMASADA", "Tidak Membantu", "Aktif"},
		{"2306", "2", "Penjelasan Materi di kelas", "Membantu", "Aktif"},
	})
	writeCSV(t, filepath.Join(dir, "data_numerik.csv"), [][]string{
		{survey.WeeklyTaskHours.Name(), survey.SleepLost.Name(), survey.Presentations.Name(), survey.NewFriends.Name()},
		{"2", "1", "0", "3"},
		{"3", "2", "1", "8"},
		{"4", "2", "2", "15"},
		{"6", "3", "0", "30"},
		{"10", "8", "3", "4"},
		{"3", "1", "1", "6"},
	})
}

func TestCLI_ReportInterpretCrosstab(t *testing.T) {
	home := isolateHome(t)
	data := filepath.Join(home, "data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		t.Fatalf("mkdir data: %v", err)
	}
	writeSurvey(t, data)

	outPath := filepath.Join(home, "out", "report.md")
	chartDir := filepath.Join(home, "charts")
	runCmd(t, "report", "--data-dir", data, "-o", outPath, "--charts", chartDir)
	md, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.HasPrefix(string(md), "# OSADA Impact Report") {
		t.Fatalf("unexpected report header: %.80q", md)
	}
	if !strings.Contains(string(md), "Interpretation:") {
		t.Fatalf("report has no interpretation lines")
	}
	charts, err := os.ReadDir(chartDir)
	if err != nil || len(charts) == 0 {
		t.Fatalf("expected chart files in %s (err=%v)", chartDir, err)
	}

	out := runCmd(t, "interpret", "--data-dir", data, "--primary", "q5")
	for _, want := range []string{"Discipline impact", "dominance", "Membantu"} {
		if !strings.Contains(out, want) {
			t.Fatalf("interpret output missing %q:\n%s", want, out)
		}
	}

	chartPath := filepath.Join(home, "q3.png")
	runCmd(t, "interpret", "--data-dir", data, "--primary", "q3", "--chart", chartPath)
	if fi, err := os.Stat(chartPath); err != nil || fi.Size() == 0 {
		t.Fatalf("expected distribution chart at %s (err=%v)", chartPath, err)
	}

	out = runCmd(t, "crosstab", "--data-dir", data)
	if !strings.Contains(out, "Task difficulty (1–4) vs Discipline impact") || !strings.Contains(out, "%") {
		t.Fatalf("unexpected crosstab output:\n%s", out)
	}

	out = runCmd(t, "columns", "--data-dir", data)
	if !strings.Contains(out, "q10") || !strings.Contains(out, "✗") {
		t.Fatalf("columns should flag the missing motivation column:\n%s", out)
	}

	out = runCmd(t, "profile", "--data-dir", data, "--dataset", "numeric")
	if !strings.Contains(out, "data_numerik.csv") {
		t.Fatalf("profile output missing dataset name:\n%s", out)
	}
}

func TestCLI_InterpretRequiresPrimary(t *testing.T) {
	isolateHome(t)
	if _, err := execute("interpret"); err == nil {
		t.Fatalf("expected error without --primary")
	}
	if _, err := execute("interpret", "--primary", "q99"); err == nil {
		t.Fatalf("expected error for unknown column")
	}
	if _, err := execute("interpret", "--primary", "q3-band"); err == nil {
		t.Fatalf("expected error for a derived band column")
	}
}

func TestCLI_MissingDataIsFatal(t *testing.T) {
	home := isolateHome(t)
	_, err := execute("report", "--data-dir", filepath.Join(home, "nowhere"))
	if !errors.Is(err, dataset.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	home := isolateHome(t)
	runCmd(t, "config", "set", "language", "id")
	runCmd(t, "config", "set", "chart_format", "svg")
	if _, err := os.Stat(filepath.Join(home, ".osada", "config.yaml")); err != nil {
		t.Fatalf("config not saved: %v", err)
	}
	out := runCmd(t, "config", "show")
	for _, want := range []string{"language: id", "chart_format: svg", "delimiter: (auto)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}
	if _, err := execute("config", "set", "chart_width", "wide"); err == nil {
		t.Fatalf("expected error for a non-numeric width")
	}
}
