package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

func column(header string, values ...string) []string { return append([]string{header}, values...) }

func records(cols ...[]string) [][]string {
	out := make([][]string, len(cols[0]))
	for i := range out {
		for _, c := range cols {
			out[i] = append(out[i], c[i])
		}
	}
	return out
}

// testBundle has ten respondents and no motivation column.
func testBundle(t *testing.T) *dataset.Bundle {
	t.Helper()
	cat, err := dataset.New("cat.csv", records(
		column(survey.TaskDifficulty.Name(), "1", "2", "2", "3", "2", "4", "1", "2", "3", "2"),
		column(survey.HelpfulActivity.Name(),
			"Wawancara HIMASADA", "Kerja Kelompok terkait Penugasan OSADA", "Kerja Kelompok terkait Penugasan OSADA",
			"Penjelasan Materi di kelas", "Kerja Kelompok terkait Penugasan OSADA", "Wawancara HIMASADA",
			"Kerja Kelompok terkait Penugasan OSADA", "Penjelasan Materi di kelas", "Wawancara HIMASADA", ""),
		column(survey.DisciplineImpact.Name(),
			"Membantu", "Membantu", "Sangat Membantu", "Membantu", "Membantu",
			"Tidak Membantu", "Sangat Membantu", "Membantu", "Sangat Membantu", "Membantu"),
		column(survey.ActivityAfter.Name(),
			"Aktif", "Aktif", "Sangat Aktif", "Tidak Aktif", "Aktif",
			"Tidak Aktif", "Sangat Aktif", "Aktif", "Aktif", "Aktif"),
		column(survey.Cohort.Name(), "23", "23", "24", "24", "23", "22", "24", "23", "22", "24"),
	))
	require.NoError(t, err)
	num, err := dataset.New("num.csv", records(
		column(survey.WeeklyTaskHours.Name(), "2", "3", "4", "6", "8", "12", "3", "4", "20", "x"),
		column(survey.SleepLost.Name(), "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"),
		column(survey.Presentations.Name(), "0", "1", "2", "0", "3", "5", "1", "0", "2", "4"),
		column(survey.NewFriends.Name(), "3", "8", "15", "30", "4", "6", "12", "25", "1", ""),
	))
	require.NoError(t, err)
	return &dataset.Bundle{RunID: "run-1", Numeric: num, Categorical: cat}
}

func testEngine() *insight.Engine {
	return insight.NewEngine(insight.Options{ParseNumber: dataset.ParseNumber})
}

func TestBuildCoversCatalogue(t *testing.T) {
	r := Build(testBundle(t), testEngine(), Options{Log: zerolog.Nop()})
	pages := 0
	for _, m := range survey.Catalog() {
		pages += len(m.Pages)
	}
	require.Len(t, r.Pages, pages)
	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, 10, r.Rows)

	overview := r.Pages[0]
	require.NotEmpty(t, overview.Metrics)
	assert.Equal(t, Metric{"Respondents", "10"}, overview.Metrics[0])
	assert.Contains(t, overview.Metrics, Metric{"Say OSADA improved their discipline", "90.0%"})
	assert.Contains(t, overview.Metrics, Metric{"Feel more active after OSADA", "80.0%"})
	assert.Contains(t, overview.Metrics, Metric{"Cohorts", "3"})
	assert.Len(t, overview.Profiles, 2)
}

func TestPieSectionInterpretation(t *testing.T) {
	r := Build(testBundle(t), testEngine(), Options{})
	s, ok := r.Section("discipline-pie")
	require.True(t, ok)
	require.NotNil(t, s.Chart)
	assert.Equal(t, survey.Pie, s.Chart.Kind)
	require.Len(t, s.Chart.Slices, 3)
	assert.Equal(t, chart.Slice{Label: "Membantu", Value: 6}, s.Chart.Slices[0])
	// 60% against 30%: clear dominance; the labels are not numeric so no trend sentence.
	want := `Category 'Membantu' dominates "` + survey.DisciplineImpact.Name() + `" with a share of about 60.0%.`
	assert.Equal(t, want, s.Insight)
}

func TestAliasedActivityLabels(t *testing.T) {
	r := Build(testBundle(t), testEngine(), Options{})
	s, ok := r.Section("activities-pie")
	require.True(t, ok)
	require.NotNil(t, s.Chart)
	assert.Equal(t, "Kerja Kelompok OSADA", s.Chart.Slices[0].Label)

	cohort, ok := r.Section("activities-cohort")
	require.True(t, ok)
	require.NotNil(t, cohort.Chart)
	labels := []string{}
	for _, st := range cohort.Chart.Stacks {
		labels = append(labels, st.Label)
	}
	assert.Contains(t, labels, "Wawancara")
}

func TestMissingColumnSkipsSection(t *testing.T) {
	r := Build(testBundle(t), testEngine(), Options{})
	s, ok := r.Section("sleep-motivation")
	require.True(t, ok)
	assert.Nil(t, s.Chart)
	assert.Contains(t, s.Note, survey.OrgMotivation.Short())
}

func TestBandedSectionKeepsBinOrder(t *testing.T) {
	r := Build(testBundle(t), testEngine(), Options{})
	s, ok := r.Section("hours-discipline")
	require.True(t, ok)
	require.NotNil(t, s.Table)
	assert.Equal(t, []string{"1–5 hours", "6–10 hours", "11–15 hours", ">15 hours"}, s.Table.Rows)
	assert.Equal(t, 9, s.Table.N())
	assert.Equal(t, []string{"Tidak Membantu", "Membantu", "Sangat Membantu"}, s.Table.Cols)
	assert.Contains(t, s.Insight, "The distribution of \""+survey.WeeklyTaskHours.Name()+"\"")

	friends, ok := r.Section("friends-engagement")
	require.True(t, ok)
	require.NotNil(t, friends.Table)
	assert.Equal(t, ">20 people", friends.Table.Rows[len(friends.Table.Rows)-1])
}

func TestCrosstab(t *testing.T) {
	bd := NewBuilder(testBundle(t), testEngine(), zerolog.Nop())
	s, err := bd.Crosstab(survey.None, survey.None)
	require.NoError(t, err)
	assert.Equal(t, "Task difficulty (1–4) vs Discipline impact", s.Title)
	require.NotNil(t, s.Table)
	assert.Equal(t, []string{"1", "2", "3", "4"}, s.Table.Rows)
	assert.Contains(t, s.Narrative, "has the highest average share")
	assert.Contains(t, s.Insight, "relationship between")

	_, err = bd.Crosstab(survey.WeeklyTaskHours, survey.DisciplineImpact)
	assert.True(t, errors.Is(err, ErrNotCrosstab))

	s, err = bd.Crosstab(survey.TaskDifficulty, survey.OrgMotivation)
	require.NoError(t, err)
	assert.NotEmpty(t, s.Note)
}

func TestDistributionOrdersNumbers(t *testing.T) {
	bd := NewBuilder(testBundle(t), testEngine(), zerolog.Nop())
	s, err := bd.Distribution(survey.Presentations)
	require.NoError(t, err)
	require.NotNil(t, s.Chart)
	var labels []string
	for _, sl := range s.Chart.Slices {
		labels = append(labels, sl.Label)
	}
	assert.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, labels)

	_, err = bd.Distribution(survey.OrgMotivation)
	assert.True(t, errors.Is(err, dataset.ErrNoColumn))
}

func TestWriteChartsAndMarkdown(t *testing.T) {
	r := Build(testBundle(t), testEngine(), Options{})
	dir := filepath.Join(t.TempDir(), "charts")
	n, err := r.WriteCharts(dir, chart.Options{Format: chart.SVG, Width: 600, Height: 400})
	require.NoError(t, err)
	assert.Greater(t, n, 5)
	_, err = os.Stat(filepath.Join(dir, "discipline-pie.svg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "sleep-motivation.svg"))
	assert.True(t, os.IsNotExist(err))

	md := r.Markdown()
	for _, want := range []string{
		"# OSADA Impact Report",
		"[CONTENTS]",
		"- Overview: OSADA Impact Dashboard",
		"[HEADLINE]",
		"- Respondents: 10",
		"[DATASET SUMMARY]",
		"### Perceived discipline improvement",
		"discipline-pie.svg)",
		"> Note: Column",
		"| 1–5 hours |",
		"Interpretation: Category 'Membantu'",
	} {
		assert.True(t, strings.Contains(md, want), "markdown missing %q", want)
	}
}

func TestCrosstabMarkdown(t *testing.T) {
	ct := insight.NewContingency([]string{"a", "a", "b"}, []string{"x", "y", "y"}, nil, nil)
	md := CrosstabMarkdown(ct)
	assert.Equal(t, "|  | x | y | n |\n|---|---:|---:|---:|\n| a | 50.0% | 50.0% | 2 |\n| b | 0.0% | 100.0% | 1 |\n", md)
}
