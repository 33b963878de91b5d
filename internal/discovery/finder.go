// Package discovery finds poker table windows and decodes their titles.
package discovery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/bryanchriswhite/TableScout/internal/site"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/bryanchriswhite/TableScout/internal/window"
	"github.com/hashicorp/go-multierror"
)

// Finder runs discovery passes against one window source. A Finder holds
// no per-call state, so it may be shared between goroutines as long as
// its Source may.
type Finder struct {
	source  window.Source
	matcher *site.Matcher
}

// Collision records two windows that decoded to the same table name in
// one pass. Only Kept is present in the result.
type Collision struct {
	Name    string `json:"name"`
	Kept    uint64 `json:"kept"`
	Dropped uint64 `json:"dropped"`
}

// Result is the outcome of a full discovery pass.
type Result struct {
	// Tables maps decoded table names to identities. When two windows
	// share a name the one enumerated last wins.
	Tables     map[string]table.Identity
	Collisions []Collision
	// Err aggregates per-window decode failures; those windows are absent
	// from Tables.
	Err error
}

// NewFinder creates a Finder
func NewFinder(src window.Source, m *site.Matcher) *Finder {
	return &Finder{
		source:  src,
		matcher: m,
	}
}

// Source returns the window source used by the finder
func (f *Finder) Source() window.Source {
	return f.source
}

// All enumerates every window once and returns the table windows of
// configured sites keyed by table name.
func (f *Finder) All() (*Result, error) {
	log := logger.WithComponent("discovery")

	windows, err := f.source.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	res := &Result{Tables: make(map[string]table.Identity)}
	var errs *multierror.Error

	for _, w := range windows {
		if !f.matcher.Matches(w.Title) && !f.matcher.Matches(w.Executable) {
			continue
		}
		if f.matcher.IsExcluded(w.Title, w.ExecutableBase()) {
			log.Debug().Str("title", w.Title).Msg("skipping non-table window")
			continue
		}

		s, ok := f.Resolve(w)
		if !ok {
			if f.source.Flavor() == window.FlavorWin32 {
				log.Warn().Str("title", w.Title).Str("executable", w.Executable).Msg("found unknown table")
			} else {
				log.Debug().Str("title", w.Title).Str("executable", w.Executable).Msg("no site for window")
			}
			continue
		}

		id, err := s.Decoder.Decode(table.Candidate{Window: w, Site: s.Name})
		if err != nil {
			log.Warn().Err(err).Uint64("handle", w.Handle).Msg("failed to decode title")
			errs = multierror.Append(errs, err)
			continue
		}

		if prev, ok := res.Tables[id.Name]; ok {
			log.Warn().
				Str("name", id.Name).
				Uint64("kept", id.Handle).
				Uint64("dropped", prev.Handle).
				Msg("two windows decode to the same table name")
			res.Collisions = append(res.Collisions, Collision{Name: id.Name, Kept: id.Handle, Dropped: prev.Handle})
		}
		res.Tables[id.Name] = id
	}

	res.Err = errs.ErrorOrNil()

	log.Debug().
		Int("windows", len(windows)).
		Int("tables", len(res.Tables)).
		Int("collisions", len(res.Collisions)).
		Msg("discovery pass done")

	return res, nil
}

// ByName returns the table whose decoded name is exactly name, or nil.
// Titles merely containing name are not enough.
func (f *Finder) ByName(name string) (*table.Identity, error) {
	if name == "" {
		return nil, nil
	}

	windows, err := f.source.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	for _, w := range windows {
		if !strings.Contains(w.Title, name) || strings.Contains(w.Title, site.HistoryMarker) {
			continue
		}
		if f.source.Flavor() == window.FlavorWin32 && site.IsAuxiliaryPanel(w.Title) {
			continue
		}

		id, ok, err := f.decode(w)
		if err != nil {
			logger.WithComponent("discovery").Debug().Err(err).Msg("skipping candidate")
			continue
		}
		if ok && id.Name == name {
			return &id, nil
		}
	}
	return nil, nil
}

// ByTournamentTable returns the first window whose title names the given
// tournament and table, or nil.
func (f *Finder) ByTournamentTable(tournament int64, tableNumber int) (*table.Identity, error) {
	pattern := TournamentPattern(f.source.Flavor(), tournament, tableNumber)

	windows, err := f.source.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	for _, w := range windows {
		if !pattern.MatchString(w.Title) {
			continue
		}
		id, ok, err := f.decode(w)
		if err != nil {
			logger.WithComponent("discovery").Debug().Err(err).Msg("skipping candidate")
			continue
		}
		if !ok {
			continue
		}
		return &id, nil
	}
	return nil, nil
}

// TournamentPattern builds the title pattern for a tournament table.
// Win32 titles are matched without the "Table" word.
func TournamentPattern(flavor window.Flavor, tournament int64, tableNumber int) *regexp.Regexp {
	if flavor == window.FlavorWin32 {
		return regexp.MustCompile(fmt.Sprintf(`%d.+%d`, tournament, tableNumber))
	}
	return regexp.MustCompile(fmt.Sprintf(`%d.+Table\s%d`, tournament, tableNumber))
}

// Resolve finds the owning site from the executable, or from the title
// when the source could not tell the executable.
func (f *Finder) Resolve(w window.RawWindow) (*site.Site, bool) {
	if w.Executable != "" {
		return f.matcher.Resolve(w.Executable)
	}
	return f.matcher.Resolve(w.Title)
}

// decode runs the owning site's decoder. ok is false when the window
// belongs to no configured site.
func (f *Finder) decode(w window.RawWindow) (table.Identity, bool, error) {
	s, ok := f.Resolve(w)
	if !ok {
		logger.WithComponent("discovery").Debug().
			Str("title", w.Title).
			Str("executable", w.Executable).
			Msg("no site for window")
		return table.Identity{}, false, nil
	}
	id, err := s.Decoder.Decode(table.Candidate{Window: w, Site: s.Name})
	return id, err == nil, err
}
