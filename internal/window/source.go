package window

import (
	"fmt"
	"runtime"

	"github.com/bryanchriswhite/TableScout/internal/logger"
)

// SourceAuto picks the default source for the host platform
const SourceAuto = "auto"

// SourceNames lists every name accepted by NewSource
var SourceNames = []string{SourceAuto, "xwininfo", "x11", "kwin", "windows", "none"}

// ValidSourceName reports whether name is accepted by NewSource
func ValidSourceName(name string) bool {
	for _, n := range SourceNames {
		if n == name {
			return true
		}
	}
	return false
}

// NewSource creates the named window source. It is meant to be called once
// at startup; the rest of the program only sees the Source interface.
func NewSource(name string) (Source, error) {
	if name == "" {
		name = SourceAuto
	}
	if !ValidSourceName(name) {
		return nil, fmt.Errorf("unknown window source %q", name)
	}
	if name == "none" {
		return NoneSource{}, nil
	}

	src, err := platformSource(name)
	if err != nil {
		return nil, err
	}

	logger.WithComponent("window").Debug().
		Str("requested", name).
		Str("source", src.Name()).
		Str("os", runtime.GOOS).
		Msg("window source selected")
	return src, nil
}

// NoneSource is used on platforms without window enumeration support.
// It never finds anything.
type NoneSource struct{}

// Name returns the source name
func (NoneSource) Name() string { return "none" }

// Flavor returns FlavorNone
func (NoneSource) Flavor() Flavor { return FlavorNone }

// Windows always returns an empty snapshot
func (NoneSource) Windows() ([]RawWindow, error) { return nil, nil }

// Close is a no-op
func (NoneSource) Close() error { return nil }
