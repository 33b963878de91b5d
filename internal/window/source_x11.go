//go:build linux || freebsd || openbsd || netbsd

package window

import (
	"fmt"
	"os"
)

func platformSource(name string) (Source, error) {
	switch name {
	case "xwininfo":
		return NewXwininfoSource(), nil
	case "x11":
		return NewX11Source()
	case "kwin":
		return NewKWinSource()
	case "windows":
		return nil, fmt.Errorf("window source %q is not available on this platform", name)
	}

	// auto
	if os.Getenv("DISPLAY") != "" {
		if xwininfoAvailable() {
			return NewXwininfoSource(), nil
		}
		if src, err := NewX11Source(); err == nil {
			return src, nil
		}
	}
	if src, err := NewKWinSource(); err == nil {
		return src, nil
	}
	return NoneSource{}, nil
}
