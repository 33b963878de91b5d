package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bryanchriswhite/TableScout/internal/config"
	"github.com/bryanchriswhite/TableScout/internal/site"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/bryanchriswhite/TableScout/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickDecoder(t *testing.T) {
	specs := config.Defaults().SiteSpecs()

	dec, name, err := pickDecoder(specs, "pokerstars", "")
	require.NoError(t, err)
	assert.Equal(t, "PokerStars", name)
	assert.IsType(t, table.MetadataDecoder{}, dec)

	dec, name, err = pickDecoder(specs, "", "")
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.IsType(t, table.GenericDecoder{}, dec)

	dec, _, err = pickDecoder(specs, "Full Tilt", "metadata")
	require.NoError(t, err)
	assert.IsType(t, table.MetadataDecoder{}, dec, "explicit kind wins")

	_, _, err = pickDecoder(specs, "Party", "")
	assert.Error(t, err)

	_, _, err = pickDecoder(specs, "", "ocr")
	assert.Error(t, err)
}

func TestPrintTables(t *testing.T) {
	eight := 8
	tables := map[string]table.Identity{
		"Zeta": {Name: "Zeta", Site: "PokerStars", Handle: 0x10},
		"Aloha": {
			Name:       "Aloha",
			Site:       "PokerStars",
			Game:       "razz",
			Structure:  table.StructureLimit,
			MaxSeats:   &eight,
			Tournament: &table.Tournament{ID: 7, Table: 2},
			Geometry:   window.Rect{X: 3, Y: 29, Width: 794, Height: 568},
			Handle:     0x3a00003,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printTables(&buf, tables))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "Aloha"), "rows are sorted by name")
	assert.Contains(t, lines[2], "7/2")
	assert.Contains(t, lines[2], "794x568+3+29")
	assert.Contains(t, lines[2], "0x3a00003")
	assert.True(t, strings.HasPrefix(lines[3], "Zeta"))
}

func TestEncode(t *testing.T) {
	id := table.Identity{Name: "Aloha", Game: "holdem"}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, formatJSON, id))
	assert.Contains(t, buf.String(), `"name": "Aloha"`)
	assert.NotContains(t, buf.String(), "tournament")

	buf.Reset()
	require.NoError(t, encode(&buf, formatYAML, id))
	assert.Contains(t, buf.String(), "game: holdem")

	assert.Error(t, encode(&buf, "xml", id))
}

func TestPrintIdentity(t *testing.T) {
	id := &table.Identity{Name: "Aloha", Site: "PokerStars"}

	var buf bytes.Buffer
	require.NoError(t, printIdentity(&buf, formatTable, id))
	assert.Contains(t, buf.String(), "name = Aloha")
	assert.Contains(t, buf.String(), "site = PokerStars")
}

type listedSource struct{}

func (listedSource) Name() string                         { return "xwininfo" }
func (listedSource) Flavor() window.Flavor                { return window.FlavorX11 }
func (listedSource) Close() error                         { return nil }
func (listedSource) Windows() ([]window.RawWindow, error) { return nil, nil }

func TestPrintWindowsResolvesLikeDiscovery(t *testing.T) {
	matcher, err := site.NewMatcher(config.Defaults().SiteSpecs()...)
	require.NoError(t, err)

	windows := []window.RawWindow{
		{Handle: 0x10, Title: "Aloha (6 max) - Razz", Executable: "pokerstars.exe"},
		{Handle: 0x20, Title: "Carmel - FullTiltPoker"},
		{Handle: 0x30, Title: "Notes - PokerStars.exe", Executable: "/usr/bin/gedit"},
	}

	var buf bytes.Buffer
	require.NoError(t, printWindows(&buf, listedSource{}, matcher, windows))

	rows := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n")[3:] {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 2)
		rows[fields[0]] = fields[1]
	}

	assert.Equal(t, "PokerStars", rows["0x10"])
	assert.Equal(t, "Full", rows["0x20"], "title-only windows resolve by title")
	assert.Equal(t, "-", rows["0x30"], "a known executable is authoritative")
}
