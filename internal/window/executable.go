package window

import "strings"

// wineLoaders are the process images Wine runs Windows programs under.
var wineLoaders = map[string]bool{
	"wine":             true,
	"wine64":           true,
	"wine-preloader":   true,
	"wine64-preloader": true,
	"wineserver":       true,
}

// isWineLoader reports whether exe names a Wine loader binary.
func isWineLoader(exe string) bool {
	return wineLoaders[RawWindow{Executable: exe}.ExecutableBase()]
}

// processIdentity is what a source could learn about a window's owner.
type processIdentity struct {
	Exe      string   // process image path
	Cmdline  []string // process arguments, Exe first
	Instance string   // WM_CLASS instance or resource name
	Class    string   // WM_CLASS class or resource class
}

// executable picks the name site finders should see. Native programs are
// identified by their image path. Wine programs run under a loader, so the
// Windows executable is taken from the command line or the window class.
func (p processIdentity) executable() string {
	if p.Exe != "" && !isWineLoader(p.Exe) {
		return p.Exe
	}

	for _, arg := range p.Cmdline {
		if strings.HasSuffix(strings.ToLower(arg), ".exe") {
			return arg
		}
	}

	switch {
	case p.Instance != "":
		return p.Instance
	case p.Class != "":
		return p.Class
	}
	return p.Exe
}
