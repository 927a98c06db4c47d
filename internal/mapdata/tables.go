package mapdata

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/OneOfOne/xxhash"
)

var (
	ErrMalformedTables = errors.New("malformed map tables")
	ErrUnknownLayout   = errors.New("unknown layout id")
)

// TerminalLayout is the last floor's layout; it is the only one without an exit.
const TerminalLayout = 30

// Tables is the read-only output of the asset compiler: layouts, sheet sizes and sheet events.
// A *Tables is safe to share between goroutines once constructed.
type Tables struct {
	layouts []byte
	sheets  map[int32]SheetSize
	events  map[EventKey][]Feature
	version string
}

// NewTables validates and wraps the three boundary tables.
// The inputs are copied so later mutation by the caller cannot leak in.
func NewTables(layouts []byte, sheets map[int32]SheetSize, events map[EventKey][]Feature) (*Tables, error) {
	t := &Tables{
		layouts: append([]byte(nil), layouts...),
		sheets:  make(map[int32]SheetSize, len(sheets)),
		events:  make(map[EventKey][]Feature, len(events)),
	}
	for k, v := range sheets {
		t.sheets[k] = v
	}
	for k, v := range events {
		t.events[k] = append([]Feature(nil), v...)
	}
	if err := ValidateTables(t); err != nil {
		return nil, err
	}
	t.version = t.checksum()
	return t, nil
}

// NumLayouts is the number of 64x64 blocks in the layout table.
func (t *Tables) NumLayouts() int { return len(t.layouts) / LayoutBytes }

// Layout returns the raw row-major bytes of one layout. The slice aliases the table; do not modify it.
func (t *Tables) Layout(id int) ([]byte, error) {
	if id < 0 || id >= t.NumLayouts() {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrUnknownLayout, id, t.NumLayouts())
	}
	off := id * LayoutBytes
	return t.layouts[off : off+LayoutBytes : off+LayoutBytes], nil
}

// Sheet returns the event sheet dimensions of a size class.
func (t *Tables) Sheet(size int32) (SheetSize, bool) {
	s, ok := t.sheets[size]
	return s, ok
}

// Events returns the features at one sheet cell; an absent cell has none.
func (t *Tables) Events(size, row, col int32) []Feature {
	return t.events[EventKey{Size: size, Row: row, Col: col}]
}

// Version identifies the table contents; it changes whenever any table byte changes.
func (t *Tables) Version() string { return t.version }

func (t *Tables) checksum() string {
	h := xxhash.New64()
	_, _ = h.Write(t.layouts)
	for _, size := range SizeClasses {
		s := t.sheets[size]
		_, _ = h.Write([]byte(fmt.Sprintf("|%d:%dx%d", size, s.Rows, s.Cols)))
		for r := int32(0); r < s.Rows; r++ {
			for c := int32(0); c < s.Cols; c++ {
				for _, f := range t.events[EventKey{size, r, c}] {
					_, _ = h.Write([]byte{byte(r), byte(c), byte(f)})
				}
			}
		}
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
