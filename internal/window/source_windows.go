//go:build windows

package window

import "fmt"

func platformSource(name string) (Source, error) {
	switch name {
	case SourceAuto, "windows":
		return NewWin32Source(), nil
	}
	return nil, fmt.Errorf("window source %q is not available on this platform", name)
}
