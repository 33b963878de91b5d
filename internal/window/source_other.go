//go:build !linux && !freebsd && !openbsd && !netbsd && !windows

package window

import "fmt"

// macOS and anything else: no enumeration yet.
func platformSource(name string) (Source, error) {
	if name == SourceAuto {
		return NoneSource{}, nil
	}
	return nil, fmt.Errorf("window source %q is not available on this platform", name)
}
