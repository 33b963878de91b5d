package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bryanchriswhite/TableScout/internal/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablescout", "config.yaml")
	m, err := NewManager(path)
	require.NoError(t, err)
	return m, path
}

func TestNewManagerCreatesDefaults(t *testing.T) {
	m, path := newTestManager(t)

	assert.FileExists(t, path)
	assert.Equal(t, path, m.GetConfigPath())

	cfg := m.Get()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "auto", cfg.Source)
	require.Len(t, cfg.Sites, 2)
	assert.Equal(t, "PokerStars", cfg.Sites[0].Name)
	assert.Equal(t, "metadata", cfg.Sites[0].Decoder)
	assert.Equal(t, "Full Tilt Poker", cfg.Sites[1].LobbyTitle)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "site_name: PokerStars")
	assert.Contains(t, string(data), "table_finder:")
}

func TestNewManagerLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log_level: debug
sites:
  - site_name: PokerStars
    table_finder: PokerStars
    decoder: pokerstars
    require_game: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	m, err := NewManager(path)
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort, "missing keys use defaults")
	require.Len(t, cfg.Sites, 1)
	assert.True(t, cfg.Sites[0].RequireGame)

	specs := cfg.SiteSpecs()
	require.Len(t, specs, 1)
	assert.Equal(t, "PokerStars", specs[0].Name)
	assert.Equal(t, "pokerstars", specs[0].Decoder)
	assert.True(t, specs[0].RequireGame)
}

func TestNewManagerRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "sites: [\n"},
		{"bad regex", "sites:\n  - site_name: X\n    table_finder: \"(\"\n    decoder: generic\n"},
		{"bad decoder", "sites:\n  - site_name: X\n    table_finder: x\n    decoder: ocr\n"},
		{"empty sites", "sites: []\n"},
		{"bad source", "source: quartz\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewManager(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Defaults().Validate())

	cfg := Defaults()
	cfg.ServerPort = 70000
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.Sites = append(cfg.Sites, SiteConfig{Name: "pokerstars", TableFinder: "x", Decoder: "generic"})
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	cfg = Defaults()
	cfg.Sites[0].Name = ""
	assert.Error(t, cfg.Validate())
}

func TestAddRemoveSite(t *testing.T) {
	m, path := newTestManager(t)

	err := m.AddSite(SiteConfig{Name: "Party", TableFinder: `PartyGaming\.exe`, Decoder: "generic"})
	require.NoError(t, err)
	require.Len(t, m.Get().Sites, 3)
	assert.Equal(t, "Party", m.Get().Sites[2].Name)

	assert.Error(t, m.AddSite(SiteConfig{Name: "party", TableFinder: "x", Decoder: "generic"}))
	assert.Error(t, m.AddSite(SiteConfig{Name: "Broken", TableFinder: "(", Decoder: "generic"}))
	assert.Len(t, m.Get().Sites, 3, "rejected changes are not applied")

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	assert.Len(t, reloaded.Get().Sites, 3)

	require.NoError(t, m.RemoveSite("PARTY"))
	assert.Len(t, m.Get().Sites, 2)
	assert.Error(t, m.RemoveSite("Party"))
}

func TestRemoveLastSiteRejected(t *testing.T) {
	m, _ := newTestManager(t)

	require.NoError(t, m.RemoveSite("Full Tilt"))
	assert.Error(t, m.RemoveSite("PokerStars"))
	assert.Len(t, m.Get().Sites, 1)
}

func TestSet(t *testing.T) {
	m, path := newTestManager(t)

	require.NoError(t, m.Set(KeyServerPort, "9090"))
	require.NoError(t, m.Set(KeyLogLevel, "debug"))
	require.NoError(t, m.Set(KeySource, "xwininfo"))

	assert.Error(t, m.Set(KeyServerPort, "many"))
	assert.Error(t, m.Set(KeySource, "wayland"))
	assert.Error(t, m.Set("virtual_display.width", "1"))

	reloaded, err := NewManager(path)
	require.NoError(t, err)
	cfg := reloaded.Get()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "xwininfo", cfg.Source)
}

func TestGetReturnsCopy(t *testing.T) {
	m, _ := newTestManager(t)

	cfg := m.Get()
	cfg.Sites[0].Name = "Changed"
	cfg.ServerPort = 1

	assert.Equal(t, "PokerStars", m.Get().Sites[0].Name)
	assert.Equal(t, 8080, m.Get().ServerPort)
}

func TestDefaultsResolveWineExecutables(t *testing.T) {
	m, err := site.NewMatcher(Defaults().SiteSpecs()...)
	require.NoError(t, err)

	tests := []struct {
		exe  string
		want string
	}{
		{exe: `C:\Program Files\PokerStars\PokerStars.exe`, want: "PokerStars"},
		{exe: "pokerstars.exe", want: "PokerStars"},
		{exe: "fulltiltpoker.exe", want: "Full Tilt"},
		{exe: "/usr/bin/wine64-preloader", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.exe, func(t *testing.T) {
			s, ok := m.Resolve(tt.exe)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, s.Name)
		})
	}
}
