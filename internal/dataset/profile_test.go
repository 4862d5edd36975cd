package dataset

import (
	"math"
	"strings"
	"testing"
)

func TestSummarizeAndMarkdown(t *testing.T) {
	records := [][]string{{"hours", "sleep", "answer", "blank"}}
	for i := 0; i < 9; i++ {
		records = append(records, []string{
			[]string{"1", "2", "3"}[i%3],
			[]string{"2", "4", "6"}[i%3],
			[]string{"Aktif", "Aktif", "Tidak Aktif"}[i%3],
			"",
		})
	}
	records = append(records, []string{"50", "100", "Aktif", ""})
	d, err := New("data.csv", records)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p := Summarize(d)
	if p.Rows != 10 || len(p.Cols) != 4 {
		t.Fatalf("rows=%d cols=%d", p.Rows, len(p.Cols))
	}
	hours := p.Cols[0]
	if hours.Kind != "numeric" || hours.Min != 1 || hours.Max != 50 {
		t.Fatalf("hours summary: %+v", hours)
	}
	if math.Abs(hours.Mean-6.8) > 1e-9 {
		t.Fatalf("mean = %v", hours.Mean)
	}
	if hours.Outliers != 1 {
		t.Fatalf("outliers = %d, want 1", hours.Outliers)
	}
	answer := p.Cols[2]
	if answer.Kind != "categorical" || answer.TopValues[0].Value != "Aktif" || answer.TopValues[0].Count != 7 {
		t.Fatalf("answer summary: %+v", answer)
	}
	if p.Cols[3].Kind != "empty" || p.Cols[3].Missing != 10 {
		t.Fatalf("blank summary: %+v", p.Cols[3])
	}
	if len(p.Corr) != 1 || math.Abs(p.Corr[0].R-1) > 1e-9 {
		t.Fatalf("corr = %+v", p.Corr)
	}
	if len(p.Samples) != sampleRows {
		t.Fatalf("samples = %d", len(p.Samples))
	}

	md := p.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: data.csv",
		"Rows: 10",
		"- hours: numeric (non-null 10, missing 0.0%)",
		"outliers: 1 above |z|>3.5",
		"top: Aktif(7), Tidak Aktif(3)",
		"- blank: empty (non-null 0, missing 100.0%)",
		"[CORRELATIONS]",
		"- hours ~ sleep: r=1.000 (n=10)",
		"[HEAD AND SAMPLE ROWS]",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
