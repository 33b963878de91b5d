package window

import (
	"fmt"
	"strings"
)

// Flavor identifies which family of window system a Source talks to.
// Discovery applies a few platform-specific search rules based on it.
type Flavor string

const (
	FlavorX11   Flavor = "x11"
	FlavorWin32 Flavor = "win32"
	FlavorNone  Flavor = "none"
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Frame holds the decoration sizes a source subtracts from the outer
// rectangle. They are fixed per source and never read from the theme.
type Frame struct {
	Border   int
	TitleBar int
}

// Inset returns the playable area inside outer.
func (f Frame) Inset(outer Rect) Rect {
	return Rect{
		X:      outer.X + f.Border,
		Y:      outer.Y + f.TitleBar,
		Width:  outer.Width - 2*f.Border,
		Height: outer.Height - f.Border - f.TitleBar,
	}
}

var (
	// clientFrame is used by sources that already report the client window.
	clientFrame = Frame{}
	// decoratedFrame assumes 3px borders and a 29px title bar.
	decoratedFrame = Frame{Border: 3, TitleBar: 29}
)

// RawWindow is one native top-level window as reported by a Source.
type RawWindow struct {
	Handle     uint64 `json:"handle"`
	Title      string `json:"title"`
	Executable string `json:"executable"`
	Outer      Rect   `json:"outer"`
	Frame      Frame  `json:"-"`
}

// Client returns the playable area of the window.
func (w RawWindow) Client() Rect {
	return w.Frame.Inset(w.Outer)
}

// ExecutableBase returns the executable name without its directory,
// accepting both slash styles.
func (w RawWindow) ExecutableBase() string {
	if i := strings.LastIndexAny(w.Executable, `/\`); i >= 0 {
		return w.Executable[i+1:]
	}
	return w.Executable
}

// Source enumerates native windows (xwininfo, X11, KWin, Win32, ...)
type Source interface {
	// Name returns the source name (e.g., "xwininfo", "x11", "kwin")
	Name() string

	// Flavor returns the window system family of the source
	Flavor() Flavor

	// Windows returns a snapshot of all top-level windows. No ordering
	// is guaranteed.
	Windows() ([]RawWindow, error)

	// Close releases any connection held by the source
	Close() error
}
