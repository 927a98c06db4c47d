package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for default/profile files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "profiles", "default.yaml")
}
func (p Paths) ProfilePath(profile string) string {
	return filepath.Join(p.BaseDir, "profiles", profile+".yaml")
}

const defaultKey = "$default"

// Loader reads YAML profiles and merges default → profile.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: profile name or "$default"
}

// NewLoader creates a profile loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the default profile path plus the given profiles' paths, for a watcher to poll.
func (l *Loader) Paths(profiles ...string) []string {
	out := []string{l.paths.DefaultPath()}
	for _, p := range profiles {
		out = append(out, l.paths.ProfilePath(p))
	}
	return out
}

// LoadMerged loads and merges default → profile (profile optional).
// It returns the merged RawConfig without validation.
func (l *Loader) LoadMerged(profile string) (RawConfig, error) {
	if !validProfileName(profile) {
		return RawConfig{}, fmt.Errorf("%w: invalid profile name %q", ErrInvalidConfig, profile)
	}
	key := profile
	if key == "" {
		key = defaultKey
	}
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if profile != "" {
		profCfg, err := readYAML(l.paths.ProfilePath(profile))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read profile %s: %w", profile, err)
		}
		merged = mergeRaw(defCfg, profCfg)
	}

	l.mu.Lock()
	l.cache[defaultKey] = defCfg
	l.cache[key] = merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
}

// validProfileName keeps profile names inside the profiles directory.
func validProfileName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// save
	if b.Save.Seed != nil {
		out.Save.Seed = b.Save.Seed
	}
	if b.Save.DaysPlayed != nil {
		out.Save.DaysPlayed = b.Save.DaysPlayed
	}
	if b.Save.LegacyRNG != nil {
		out.Save.LegacyRNG = b.Save.LegacyRNG
	}
	if b.Save.PostPatch != nil {
		out.Save.PostPatch = b.Save.PostPatch
	}
	if b.Save.HasCaldera != nil {
		out.Save.HasCaldera = b.Save.HasCaldera
	}
	if b.Save.CoconutUnlocked != nil {
		out.Save.CoconutUnlocked = b.Save.CoconutUnlocked
	}

	// luck
	switch {
	case out.Luck == nil && b.Luck != nil:
		c := *b.Luck
		out.Luck = &c
	case out.Luck != nil && b.Luck != nil:
		c := *out.Luck
		if b.Luck.MaxLuckLevel != nil {
			c.MaxLuckLevel = b.Luck.MaxLuckLevel
		}
		if b.Luck.SpecialCharm != nil {
			c.SpecialCharm = b.Luck.SpecialCharm
		}
		out.Luck = &c
	}

	return out
}
