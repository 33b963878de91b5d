package table

import (
	"errors"
	"testing"

	"github.com/bryanchriswhite/TableScout/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(title string) Candidate {
	return Candidate{
		Window: window.RawWindow{
			Handle:     0x3a00003,
			Title:      title,
			Executable: "PokerStars.exe",
			Outer:      window.Rect{X: 100, Y: 100, Width: 800, Height: 600},
			Frame:      window.Frame{Border: 3, TitleBar: 29},
		},
		Site: "PokerStars",
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Bellagio (6 max)", "Bellagio"},
		{"Bellagio (deep), 50BB min", "Bellagio"},
		{"Bellagio (heads up)", "Bellagio"},
		{"Bellagio (deep hu)", "Bellagio"},
		{"Bellagio (deep 6)", "Bellagio"},
		{"Bellagio (edu, 6 max)", "Bellagio"},
		{"Bellagio (speed) fast", "Bellagio"},
		{"Bellagio no all-in", "Bellagio"},
		{"Bellagio (2)", "Bellagio"},
		{"Bellagio (6)", "Bellagio"},
		{"Bellagio   ", "Bellagio"},
		{"Bellagio", "Bellagio"},
		{"Ringe, II", "Ringe II"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.raw))
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"Bellagio (6 max)",
		"Bellagio (6 (6 max) max)",
		"Bellagio (deep), 50BB min ",
		"Aloha (speed) (6 max) fast,",
		"Tournament 118942908 Table 3",
		"x  (2) ,",
	}

	for _, in := range inputs {
		once := NormalizeName(in)
		assert.Equal(t, once, NormalizeName(once), "input %q", in)
	}
}

func TestNormalizeNameOrderIndependent(t *testing.T) {
	a := NormalizeName("Bellagio (6 max) (deep)")
	b := NormalizeName("Bellagio (deep) (6 max)")
	assert.Equal(t, "Bellagio", a)
	assert.Equal(t, a, b)
}

func TestGenericDecoder(t *testing.T) {
	id, err := GenericDecoder{}.Decode(candidate("Bellagio (6 max) - $1/$2 - No Limit Hold'em"))
	require.NoError(t, err)

	assert.Equal(t, "Bellagio", id.Name)
	assert.Nil(t, id.Tournament)
	assert.Empty(t, id.Game)
	assert.Empty(t, id.Structure)
	assert.Nil(t, id.MaxSeats)
	assert.Equal(t, "PokerStars", id.Site)
	assert.Equal(t, window.Rect{X: 103, Y: 129, Width: 794, Height: 568}, id.Geometry)
}

func TestMetadataDecoderTournament(t *testing.T) {
	id, err := MetadataDecoder{}.Decode(candidate("Tournament 118942908 Table 3 - PokerName"))
	require.NoError(t, err)

	require.NotNil(t, id.Tournament)
	assert.Equal(t, int64(118942908), id.Tournament.ID)
	assert.Equal(t, 3, id.Tournament.Table)
	assert.Equal(t, "Tournament 118942908 Table 3", id.Name)
	assert.Empty(t, id.Game)
}

func TestMetadataDecoderTournamentNameNotNormalized(t *testing.T) {
	id, err := MetadataDecoder{}.Decode(candidate("Tournament 5 Table 1 (6 max) - Pot Limit Omaha"))
	require.NoError(t, err)

	assert.Equal(t, "Tournament 5 Table 1 (6 max)", id.Name)
	assert.Equal(t, Game("omaha"), id.Game)
	assert.Equal(t, StructurePotLimit, id.Structure)
}

func TestMetadataDecoderGames(t *testing.T) {
	eight, six := 8, 6
	tests := []struct {
		title     string
		name      string
		game      Game
		structure Structure
		maxSeats  *int
	}{
		{"Aloha - No Limit Hold'em", "Aloha", "holdem", StructureNoLimit, nil},
		{"Bellagio (6 max) - Omaha H/L", "Bellagio", "omaha hi/lo", StructureLimit, nil},
		{"Caliban - $0.10/$0.20 - Pot Limit Omaha", "Caliban", "omaha", StructurePotLimit, nil},
		{"Dione - Limit Stud H/L", "Dione", "stud hi/lo", StructureLimit, &eight},
		{"Europa - Limit Stud", "Europa", "stud", StructureLimit, &eight},
		{"Fornax - Razz", "Fornax", "razz", StructureLimit, &eight},
		{"Gaspra (6) - 5-Card Draw", "Gaspra", "5-card draw", StructureLimit, &six},
		{"Hydra - Triple Draw 2-7 Lowball", "Hydra", "triple draw 2-7 lowball", StructureLimit, &six},
		{"Io - Badugi", "Io", "badugi", StructureLimit, nil},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			id, err := MetadataDecoder{RequireGame: true}.Decode(candidate(tt.title))
			require.NoError(t, err)

			assert.Equal(t, tt.name, id.Name)
			assert.Equal(t, tt.game, id.Game)
			assert.Equal(t, tt.structure, id.Structure)
			assert.Equal(t, tt.maxSeats, id.MaxSeats)
			assert.Nil(t, id.Tournament)
		})
	}
}

func TestMetadataDecoderRequireGame(t *testing.T) {
	_, err := MetadataDecoder{RequireGame: true}.Decode(candidate("Tournament 1 Table 2 - PokerName"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, ReasonUnrecognizedGame, decodeErr.Reason)

	id, err := MetadataDecoder{}.Decode(candidate("Tournament 1 Table 2 - PokerName"))
	require.NoError(t, err)
	assert.Empty(t, id.Game)
	assert.Nil(t, id.MaxSeats)
}

func TestNewDecoder(t *testing.T) {
	d, err := NewDecoder("metadata", Options{RequireGame: true})
	require.NoError(t, err)
	assert.Equal(t, MetadataDecoder{RequireGame: true}, d)

	d, err = NewDecoder("PokerStars", Options{})
	require.NoError(t, err)
	assert.IsType(t, MetadataDecoder{}, d)

	d, err = NewDecoder("fulltilt", Options{})
	require.NoError(t, err)
	assert.IsType(t, GenericDecoder{}, d)

	_, err = NewDecoder("carbon_decode_table", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generic")
}

func TestRegister(t *testing.T) {
	Register("upper", func(Options) Decoder {
		return DecoderFunc(func(c Candidate) (Identity, error) {
			return c.base("UPPER"), nil
		})
	})

	d, err := NewDecoder("upper", Options{})
	require.NoError(t, err)
	id, err := d.Decode(candidate("anything"))
	require.NoError(t, err)
	assert.Equal(t, "UPPER", id.Name)
	assert.Contains(t, Kinds(), "upper")
}

func TestIdentityString(t *testing.T) {
	id, err := MetadataDecoder{}.Decode(candidate("Tournament 7 Table 2 - Razz"))
	require.NoError(t, err)

	s := id.String()
	assert.Contains(t, s, "tournament = 7")
	assert.Contains(t, s, "table = 2")
	assert.Contains(t, s, "game = razz")
	assert.Contains(t, s, "max = 8")
}
