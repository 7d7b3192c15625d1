package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if cfg.Thresholds.PrefixLen != 60 || cfg.Thresholds.SimilarRatio != 0.9 {
		t.Fatalf("unexpected default thresholds: %+v", cfg.Thresholds)
	}
}

func TestLoadTOMLOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
data_root = "content"
courses = ["cpa", "ea"]
min_severity = "high"

[sections]
ea = ["SEE1", "SEE2"]

[thresholds]
prefix_len = 40
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataRoot != filepath.Join(dir, "content") {
		t.Fatalf("data_root must resolve against the config dir, got %q", cfg.DataRoot)
	}
	if diff := cmp.Diff([]string{"cpa", "ea"}, cfg.Courses); diff != "" {
		t.Fatalf("courses (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"SEE1", "SEE2"}, cfg.Sections["ea"]); diff != "" {
		t.Fatalf("ea sections (-want +got):\n%s", diff)
	}
	if _, ok := cfg.SectionsFor("cpa"); !ok {
		t.Fatalf("default cpa sections must survive the overlay")
	}
	if cfg.Thresholds.PrefixLen != 40 || cfg.Thresholds.MinOptions != 4 {
		t.Fatalf("threshold overlay wrong: %+v", cfg.Thresholds)
	}
	if cfg.Path != path {
		t.Fatalf("path not recorded")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "audit.yaml")
	writeFile(t, path, "courses: [cisa]\nthresholds:\n  display_cap: 10\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.HasCourse("cisa") || cfg.HasCourse("cpa") {
		t.Fatalf("unexpected courses: %v", cfg.Courses)
	}
	if cfg.Thresholds.DisplayCap != 10 {
		t.Fatalf("display cap: want 10, got %d", cfg.Thresholds.DisplayCap)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty courses", "courses = []\n", "Courses"},
		{"ratio above one", "[thresholds]\nsimilar_ratio = 1.5\n", "SimilarRatio"},
		{"max below min", "[thresholds]\nmin_options = 5\nmax_options = 3\n", "MaxOptions"},
		{"bad regexp", "ai_artifacts = [\"(unclosed\"]\n", "AIArtifacts"},
		{"bad severity", "min_severity = \"urgent\"\n", "MinSeverity"},
		{"unknown key", "colour = true\n", "unknown key"},
		{"bad extension", "extensions = [\"ts\"]\n", "Extensions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			writeFile(t, path, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("want ErrConfigNotFound, got %v", err)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "")
	nested := filepath.Join(root, "src", "data", "cpa")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	got, ok, err := FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("find: ok=%v err=%v", ok, err)
	}
	absRoot, _ := filepath.Abs(root)
	want := filepath.Join(absRoot, ConfigFileName)
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}

	cfg, err := LoadNearest(nested)
	if err != nil {
		t.Fatalf("load nearest: %v", err)
	}
	if cfg.DataRoot != filepath.Join(absRoot, "src", "data") {
		t.Fatalf("unexpected data root %q", cfg.DataRoot)
	}
}

func TestLoadNearestWithoutFile(t *testing.T) {
	cfg, err := LoadNearest(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		// A contentaudit.toml above the temp dir would make this test meaningless.
		t.Skipf("config found above temp dir: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("defaults expected (-want +got):\n%s", diff)
	}
}
