package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xtding233/volcano-backend/internal/volcano"
)

func writeProfile(t *testing.T, base, name, body string) string {
	t.Helper()
	dir := filepath.Join(base, "profiles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name+".yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const defaultYAML = `version: "1"
save:
  seed: 12345
  days_played: 1
luck:
  max_luck_level: 0
`

func TestLoadMergedProfileOverridesDefault(t *testing.T) {
	base := t.TempDir()
	writeProfile(t, base, "default", defaultYAML)
	writeProfile(t, base, "farm", `version: "2"
save:
  days_played: 40
  post_patch: true
  has_caldera: true
luck:
  special_charm: true
`)

	l := NewLoader(base)
	cfg, err := l.LoadMerged("farm")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != "2" {
		t.Errorf("version = %q", cfg.Version)
	}
	if *cfg.Save.Seed != 12345 || *cfg.Save.DaysPlayed != 40 {
		t.Errorf("save = seed %d days %d", *cfg.Save.Seed, *cfg.Save.DaysPlayed)
	}
	if cfg.Luck == nil || *cfg.Luck.MaxLuckLevel != 0 || !*cfg.Luck.SpecialCharm {
		t.Errorf("luck not merged: %+v", cfg.Luck)
	}

	def, err := l.LoadMerged("")
	if err != nil {
		t.Fatal(err)
	}
	if *def.Save.DaysPlayed != 1 || def.Luck.SpecialCharm != nil {
		t.Error("profile leaked into the default layer")
	}
}

func TestLoadMergedMissingProfileIsDefault(t *testing.T) {
	base := t.TempDir()
	writeProfile(t, base, "default", defaultYAML)
	cfg, err := NewLoader(base).LoadMerged("nobody")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg.Save.Seed != 12345 {
		t.Errorf("seed = %d", *cfg.Save.Seed)
	}
}

func TestLoadMergedRejectsPathNames(t *testing.T) {
	_, err := NewLoader(t.TempDir()).LoadMerged("../secrets")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("path traversal: err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoaderCacheAndInvalidate(t *testing.T) {
	base := t.TempDir()
	writeProfile(t, base, "default", defaultYAML)
	l := NewLoader(base)
	if _, err := l.LoadMerged(""); err != nil {
		t.Fatal(err)
	}
	writeProfile(t, base, "default", strings.Replace(defaultYAML, "12345", "7", 1))

	cfg, _ := l.LoadMerged("")
	if *cfg.Save.Seed != 12345 {
		t.Fatal("cached value expected before Invalidate")
	}
	l.Invalidate()
	cfg, _ = l.LoadMerged("")
	if *cfg.Save.Seed != 7 {
		t.Fatalf("seed = %d after Invalidate, want 7", *cfg.Save.Seed)
	}
}

func TestResolveAppliesOverrides(t *testing.T) {
	base := t.TempDir()
	writeProfile(t, base, "default", defaultYAML)
	days := uint32(3)
	seed := int32(6)
	luck := uint32(10)
	yes := true

	_, s, err := NewLoader(base).Resolve("", Overrides{
		Seed: &seed, DaysPlayed: &days, MaxLuckLevel: &luck, PostPatch: &yes, HasCaldera: &yes,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := volcano.GameSettings{Seed: 6, DaysPlayed: 3, MaxLuckLevel: 10, PostPatch: true, HasCaldera: true}
	if s != want {
		t.Fatalf("settings = %+v, want %+v", s, want)
	}
}

func TestResolveValidates(t *testing.T) {
	base := t.TempDir()
	writeProfile(t, base, "default", "save:\n  days_played: 0\nluck:\n  max_luck_level: 5000\n")
	_, _, err := NewLoader(base).Resolve("", Overrides{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
	for _, frag := range []string{"save.seed is required", "save.days_played must be >= 1", "luck.max_luck_level must be <= 1000"} {
		if !strings.Contains(err.Error(), frag) {
			t.Errorf("error %q lacks %q", err, frag)
		}
	}
}

func TestResolveBrokenYAML(t *testing.T) {
	base := t.TempDir()
	writeProfile(t, base, "default", "save: [")
	if _, _, err := NewLoader(base).Resolve("", Overrides{}); err == nil {
		t.Fatal("broken YAML accepted")
	}
}

func TestToSettingsDefaults(t *testing.T) {
	if s := ToSettings(RawConfig{}); s != (volcano.GameSettings{}) {
		t.Fatalf("empty config = %+v", s)
	}
}

func TestFileWatcherScan(t *testing.T) {
	base := t.TempDir()
	path := writeProfile(t, base, "default", defaultYAML)
	missing := filepath.Join(base, "profiles", "later.yaml")

	var changed []string
	w := NewFileWatcher([]string{path, missing}, time.Hour, func(p string) { changed = append(changed, p) })
	w.scan(true)

	w.scan(false)
	if len(changed) != 0 {
		t.Fatalf("no change expected, got %v", changed)
	}

	if err := os.WriteFile(path, []byte(defaultYAML+"notes: edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeProfile(t, base, "later", defaultYAML)
	w.scan(false)
	if len(changed) != 2 || changed[0] != path || changed[1] != missing {
		t.Fatalf("changed = %v", changed)
	}

	if err := os.Remove(missing); err != nil {
		t.Fatal(err)
	}
	w.scan(false)
	if len(changed) != 3 || changed[2] != missing {
		t.Fatalf("removal not reported: %v", changed)
	}
}
