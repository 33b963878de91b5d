// Package table turns native window descriptors into table identities.
package table

import (
	"fmt"
	"strings"

	"github.com/bryanchriswhite/TableScout/internal/window"
)

// Game is a decoded game variant, e.g. "holdem" or "stud hi/lo".
// The empty Game means the title did not name one.
type Game string

// Structure is a decoded betting structure.
type Structure string

const (
	StructureNoLimit  Structure = "no limit"
	StructurePotLimit Structure = "pot limit"
	StructureLimit    Structure = "limit"
)

// Tournament locates a table inside a multi-table tournament.
type Tournament struct {
	ID    int64 `json:"id" yaml:"id"`
	Table int   `json:"table" yaml:"table"`
}

// Identity is everything known about one table window. Values are built
// once by a Decoder and not modified afterwards.
type Identity struct {
	Handle     uint64      `json:"handle" yaml:"handle"`
	Executable string      `json:"executable" yaml:"executable"`
	Title      string      `json:"title" yaml:"title"`
	Site       string      `json:"site,omitempty" yaml:"site,omitempty"`
	Name       string      `json:"name" yaml:"name"`
	Geometry   window.Rect `json:"geometry" yaml:"geometry"`
	Tournament *Tournament `json:"tournament,omitempty" yaml:"tournament,omitempty"`
	Game       Game        `json:"game,omitempty" yaml:"game,omitempty"`
	Structure  Structure   `json:"structure,omitempty" yaml:"structure,omitempty"`
	MaxSeats   *int        `json:"max_seats,omitempty" yaml:"max_seats,omitempty"`
}

// Candidate is the input of a Decoder: a native window and the site it
// was resolved to (empty when unresolved).
type Candidate struct {
	Window window.RawWindow
	Site   string
}

// base fills the fields every decoder copies straight from the window.
func (c Candidate) base(name string) Identity {
	return Identity{
		Handle:     c.Window.Handle,
		Executable: c.Window.Executable,
		Title:      c.Window.Title,
		Site:       c.Site,
		Name:       name,
		Geometry:   c.Window.Client(),
	}
}

func (id Identity) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "name = %s\nsite = %s\nhandle = %#x\ntitle = %s\n", id.Name, id.Site, id.Handle, id.Title)
	fmt.Fprintf(&b, "geometry = %s\n", id.Geometry)
	if id.Tournament != nil {
		fmt.Fprintf(&b, "tournament = %d\ntable = %d\n", id.Tournament.ID, id.Tournament.Table)
	}
	if id.Game != "" {
		fmt.Fprintf(&b, "game = %s\nstructure = %s\n", id.Game, id.Structure)
	}
	if id.MaxSeats != nil {
		fmt.Fprintf(&b, "max = %d\n", *id.MaxSeats)
	}
	return b.String()
}

// titleSeparator splits a title into name and descriptive segments.
const titleSeparator = " - "

// firstSegment returns the part of title before the first separator.
func firstSegment(title string) string {
	name, _, _ := strings.Cut(title, titleSeparator)
	return name
}
