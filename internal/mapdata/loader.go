package mapdata

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths helper for the compiled table files.
type Paths struct {
	DataDir string // directory holding layouts.bin and set_pieces.yaml
}

func (p Paths) LayoutsPath() string {
	return filepath.Join(p.DataDir, "layouts.bin")
}
func (p Paths) SetPiecesPath() string {
	return filepath.Join(p.DataDir, "set_pieces.yaml")
}

// setPieceFile mirrors set_pieces.yaml.
type setPieceFile struct {
	Sizes  map[int32]SheetSize `yaml:"sizes"`
	Events []eventEntry        `yaml:"events"`
}

type eventEntry struct {
	Size     int32    `yaml:"size"`
	Row      int32    `yaml:"row"`
	Col      int32    `yaml:"col"`
	Features []string `yaml:"features"`
}

// Loader reads the table files once and hands out the same *Tables until invalidated.
type Loader struct {
	paths Paths

	mu     sync.RWMutex
	tables *Tables
}

// NewLoader creates a table loader over dataDir.
func NewLoader(dataDir string) *Loader {
	return &Loader{paths: Paths{DataDir: dataDir}}
}

// Paths returns the files this loader reads, for a watcher to poll.
func (l *Loader) Paths() []string {
	return []string{l.paths.LayoutsPath(), l.paths.SetPiecesPath()}
}

// Load returns the cached tables, reading and validating them on first use.
func (l *Loader) Load() (*Tables, error) {
	l.mu.RLock()
	if l.tables != nil {
		t := l.tables
		l.mu.RUnlock()
		return t, nil
	}
	l.mu.RUnlock()

	layouts, err := os.ReadFile(l.paths.LayoutsPath())
	if err != nil {
		return nil, fmt.Errorf("read layouts: %w", err)
	}
	sp, err := os.ReadFile(l.paths.SetPiecesPath())
	if err != nil {
		return nil, fmt.Errorf("read set pieces: %w", err)
	}
	t, err := Parse(layouts, sp)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.tables = t
	l.mu.Unlock()
	return t, nil
}

// Invalidate drops the cached tables. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tables = nil
}

// Parse builds tables from the raw layout bytes and the set_pieces.yaml document.
func Parse(layouts, setPieces []byte) (*Tables, error) {
	var f setPieceFile
	if err := yaml.Unmarshal(setPieces, &f); err != nil {
		return nil, fmt.Errorf("%w: set pieces: %v", ErrMalformedTables, err)
	}
	events := make(map[EventKey][]Feature, len(f.Events))
	for i, e := range f.Events {
		feats := make([]Feature, 0, len(e.Features))
		for _, name := range e.Features {
			ft, err := ParseFeature(name)
			if err != nil {
				return nil, fmt.Errorf("%w: events[%d]: %v", ErrMalformedTables, i, err)
			}
			feats = append(feats, ft)
		}
		k := EventKey{Size: e.Size, Row: e.Row, Col: e.Col}
		if _, dup := events[k]; dup {
			return nil, fmt.Errorf("%w: events[%d]: duplicate cell (%d,%d,%d)", ErrMalformedTables, i, e.Size, e.Row, e.Col)
		}
		events[k] = feats
	}
	return NewTables(layouts, f.Sizes, events)
}

// MarshalSetPieces renders sheets and events in the set_pieces.yaml format, cells in sheet order.
func MarshalSetPieces(sheets map[int32]SheetSize, events map[EventKey][]Feature) ([]byte, error) {
	f := setPieceFile{Sizes: sheets}
	for _, size := range SizeClasses {
		s := sheets[size]
		for r := int32(0); r < s.Rows; r++ {
			for c := int32(0); c < s.Cols; c++ {
				feats, ok := events[EventKey{Size: size, Row: r, Col: c}]
				if !ok {
					continue
				}
				names := make([]string, len(feats))
				for i, ft := range feats {
					names[i] = ft.String()
				}
				f.Events = append(f.Events, eventEntry{Size: size, Row: r, Col: c, Features: names})
			}
		}
	}
	return yaml.Marshal(f)
}
