// Package site decides which configured poker site owns a window and
// whether the window is a table at all.
package site

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanchriswhite/TableScout/internal/table"
)

// Spec is the configuration of one supported site.
type Spec struct {
	Name        string
	TableFinder string
	Decoder     string
	LobbyTitle  string
	RequireGame bool
}

// Site is a compiled Spec.
type Site struct {
	Name       string
	Finder     *regexp.Regexp
	Decoder    table.Decoder
	LobbyTitle string
}

// Matcher tests windows against the configured sites in declaration order.
type Matcher struct {
	sites []*Site
}

// substrings whose presence marks a window as something other than a table
var excludedSubstrings = []string{
	"Lobby",
	"Instant Hand History",
	HistoryMarker,
	"has no name",
}

// HistoryMarker identifies hand-history viewer windows.
const HistoryMarker = "History for table:"

// NewMatcher compiles specs. Invalid patterns and unknown decoders are errors.
func NewMatcher(specs ...Spec) (*Matcher, error) {
	m := &Matcher{sites: make([]*Site, 0, len(specs))}
	for _, spec := range specs {
		finder, err := regexp.Compile(spec.TableFinder)
		if err != nil {
			return nil, fmt.Errorf("site %s: invalid table_finder %q: %w", spec.Name, spec.TableFinder, err)
		}
		dec, err := table.NewDecoder(spec.Decoder, table.Options{RequireGame: spec.RequireGame})
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", spec.Name, err)
		}
		m.sites = append(m.sites, &Site{
			Name:       spec.Name,
			Finder:     finder,
			Decoder:    dec,
			LobbyTitle: spec.LobbyTitle,
		})
	}
	return m, nil
}

// Sites returns the compiled sites in declaration order
func (m *Matcher) Sites() []*Site {
	return m.sites
}

// Matches reports whether any site's finder matches s
func (m *Matcher) Matches(s string) bool {
	if s == "" {
		return false
	}
	for _, site := range m.sites {
		if site.Finder.MatchString(s) {
			return true
		}
	}
	return false
}

// Resolve returns the first site whose finder matches an executable
// path or a title.
func (m *Matcher) Resolve(exeOrTitle string) (*Site, bool) {
	if exeOrTitle == "" {
		return nil, false
	}
	for _, site := range m.sites {
		if site.Finder.MatchString(exeOrTitle) {
			return site, true
		}
	}
	return nil, false
}

// IsExcluded reports whether a window owned by a poker client is not a
// table: lobbies, hand histories, placeholders and splash windows. Every
// rule is checked; any match excludes.
func (m *Matcher) IsExcluded(title, exeBase string) bool {
	for _, s := range excludedSubstrings {
		if strings.Contains(title, s) {
			return true
		}
	}
	for _, site := range m.sites {
		if site.LobbyTitle != "" && title == site.LobbyTitle {
			return true
		}
	}
	return exeBase != "" && title == exeBase
}

// IsAuxiliaryPanel reports HUD and chat panels, which Win32 clients
// title after the table they belong to.
func IsAuxiliaryPanel(title string) bool {
	return strings.Contains(title, "HUD:") || strings.Contains(title, "Chat:")
}
