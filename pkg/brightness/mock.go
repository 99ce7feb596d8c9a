package brightness

import (
	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/bright/pkg/display"
)

// MockLibrary is an in-memory Library. It exposes every symbol unless
// Symbols is non-nil.
type MockLibrary struct {
	Symbols map[string]bool
	Level   float32
	SetCode int
	GetCode int

	SetCalls   int
	CloseCalls int
}

func (m *MockLibrary) has(symbol string) bool {
	return m.Symbols == nil || m.Symbols[symbol]
}

func (m *MockLibrary) Setter(symbol string) (SetterFunc, error) {
	if !m.has(symbol) {
		return nil, pkgerrors.Errorf("symbol %s not found", symbol)
	}

	return func(_ display.ID, level float32) int {
		m.SetCalls++
		if m.SetCode == 0 {
			m.Level = level
		}
		return m.SetCode
	}, nil
}

func (m *MockLibrary) Getter(symbol string, _ GetterStyle) (GetterFunc, error) {
	if !m.has(symbol) {
		return nil, pkgerrors.Errorf("symbol %s not found", symbol)
	}

	return func(_ display.ID) (float32, int) {
		return m.Level, m.GetCode
	}, nil
}

func (m *MockLibrary) Close() error {
	m.CloseCalls++
	return nil
}

// MockOpener serves MockLibrary values keyed by path.
type MockOpener struct {
	Libraries map[string]*MockLibrary
	Opened    []string
}

func (o *MockOpener) Open(path string) (Library, error) {
	lib, ok := o.Libraries[path]
	if !ok {
		return nil, pkgerrors.Errorf("dlopen %s: image not found", path)
	}
	o.Opened = append(o.Opened, path)

	return lib, nil
}

// NewMock returns a Controller over DefaultFrameworks whose libraries are
// served from libraries. The main display is always displayID.
func NewMock(libraries map[string]*MockLibrary, displayID display.ID) (*Controller, *MockOpener) {
	opener := &MockOpener{Libraries: libraries}
	c := NewWithOpener(opener, DefaultFrameworks)
	c.mainDisplay = func() display.ID { return displayID }

	return c, opener
}
