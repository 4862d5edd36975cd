package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "." || c.NumericFile != "data_numerik.csv" || c.CategoricalFile != "data_kategorikal.csv" {
		t.Fatalf("unexpected file defaults: %+v", c)
	}
	if c.Language != "en" || c.ChartFormat != "png" || c.ChartWidth != 800 || c.ListenAddr != "127.0.0.1:8080" {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.Association.ContinuityCorrection {
		t.Fatalf("continuity correction must default to off")
	}
	if c.DelimiterRune() != 0 {
		t.Fatalf("delimiter must default to auto")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OSADA_LANGUAGE", "id")
	t.Setenv("OSADA_CHART_WIDTH", "1024")
	t.Setenv("OSADA_ASSOCIATION_CONTINUITY_CORRECTION", "true")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Language != "id" || c.ChartWidth != 1024 || !c.Association.ContinuityCorrection {
		t.Fatalf("env not applied: %+v", c)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	os.Unsetenv("OSADA_XLSX_SHEET")
	t.Cleanup(func() { os.Unsetenv("OSADA_XLSX_SHEET") })
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OSADA_XLSX_SHEET=Responses\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.XLSXSheet != "Responses" {
		t.Fatalf("xlsx_sheet = %q, want value from .env", c.XLSXSheet)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := c.Set("data_dir", "/srv/osada"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("association.continuity_correction", "true"); err != nil {
		t.Fatal(err)
	}
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.DataDir != "/srv/osada" || !again.Association.ContinuityCorrection {
		t.Fatalf("saved values not reloaded: %+v", again)
	}
}

func TestSetValidation(t *testing.T) {
	c := &Global{}
	good := map[string]string{
		"language":     "Indonesian",
		"chart_format": "SVG",
		"chart_height": "600",
		"log_level":    "DEBUG",
		"delimiter":    "tab",
	}
	for k, v := range good {
		if err := c.Set(k, v); err != nil {
			t.Errorf("Set(%s, %s): %v", k, v, err)
		}
	}
	if c.Language != "id" || c.ChartFormat != "svg" || c.ChartHeight != 600 || c.LogLevel != "debug" {
		t.Fatalf("normalisation failed: %+v", c)
	}
	if c.DelimiterRune() != '\t' {
		t.Fatalf("tab delimiter not resolved")
	}
	bad := map[string]string{
		"language":     "fr",
		"chart_format": "gif",
		"chart_width":  "10",
		"delimiter":    ";;",
		"log_level":    "loud",
		"association.continuity_correction": "maybe",
		"nope":         "x",
	}
	for k, v := range bad {
		if err := c.Set(k, v); err == nil {
			t.Errorf("Set(%s, %s) should fail", k, v)
		}
	}
	for _, k := range Keys {
		if _, err := c.Get(k); err != nil {
			t.Errorf("Get(%s): %v", k, err)
		}
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"OSADA_DELIMITER":    "ab",
		"OSADA_LANGUAGE":     "fr",
		"OSADA_CHART_FORMAT": "gif",
		"OSADA_CHART_WIDTH":  "5",
		"OSADA_LOG_LEVEL":    "loud",
	}
	for env, val := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv(env, val)
			if _, err := Load(""); err == nil {
				t.Fatalf("Load with %s=%s should fail", env, val)
			}
		})
	}
}

func TestLoadNormalisesValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("language: Indonesian\nchart_format: SVG\ndelimiter: tab\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Language != "id" || c.ChartFormat != "svg" || c.DelimiterRune() != '\t' {
		t.Fatalf("values not normalised: %+v", c)
	}
}
