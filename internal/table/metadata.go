package table

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	tournamentPattern = regexp.MustCompile(`Tournament (\d+) Table (\d+)`)

	// Alternation is leftmost-first, so "Stud H/L" wins over "Stud" and
	// "Omaha H/L" over "Omaha" when they start at the same offset.
	gamePattern = regexp.MustCompile(`(Razz|Stud H/L|Stud|Omaha H/L|Omaha|Hold'em|5-Card Draw|Triple Draw 2-7 Lowball|Badugi)`)

	structurePattern = regexp.MustCompile(`(No Limit|Pot Limit)`)
)

// maxSeats by game. Hold'em and Omaha tables come in several sizes the
// title does not reveal, so they are absent.
var maxSeats = map[Game]int{
	"razz":                    8,
	"stud":                    8,
	"stud hi/lo":              8,
	"5-card draw":             6,
	"triple draw 2-7 lowball": 6,
}

// MetadataDecoder reads tournament, game and betting structure from
// titles such as "Tournament 118942908 Table 3 - No Limit Hold'em".
type MetadataDecoder struct {
	RequireGame bool
}

// Decode implements Decoder.
func (d MetadataDecoder) Decode(c Candidate) (Identity, error) {
	title := c.Window.Title
	segment := firstSegment(title)

	var id Identity
	if tour, ok := parseTournament(segment); ok {
		// Tournament tables keep the full segment so that simultaneously
		// open tables of one tournament stay distinct.
		id = c.base(segment)
		id.Tournament = tour
	} else {
		id = c.base(NormalizeName(segment))
	}

	id.Game = parseGame(title)
	if id.Game == "" && d.RequireGame {
		return Identity{}, &DecodeError{Title: title, Reason: ReasonUnrecognizedGame}
	}
	id.Structure = parseStructure(title)

	if n, ok := maxSeats[id.Game]; ok {
		id.MaxSeats = &n
	}
	return id, nil
}

func parseTournament(s string) (*Tournament, bool) {
	m := tournamentPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	tour, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil, false
	}
	table, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	return &Tournament{ID: tour, Table: table}, true
}

func parseGame(title string) Game {
	m := gamePattern.FindStringSubmatch(title)
	if m == nil {
		return ""
	}
	game := strings.ToLower(m[1])
	game = strings.ReplaceAll(game, "'", "")
	game = strings.ReplaceAll(game, "h/l", "hi/lo")
	return Game(game)
}

func parseStructure(title string) Structure {
	m := structurePattern.FindStringSubmatch(title)
	if m == nil {
		return StructureLimit
	}
	return Structure(strings.ToLower(m[1]))
}
