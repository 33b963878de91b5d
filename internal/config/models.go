package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/bryanchriswhite/TableScout/internal/site"
	"github.com/bryanchriswhite/TableScout/internal/table"
	"github.com/bryanchriswhite/TableScout/internal/window"
	"gopkg.in/yaml.v3"
)

// SiteConfig describes one supported poker site
type SiteConfig struct {
	Name        string `json:"site_name" yaml:"site_name"`
	TableFinder string `json:"table_finder" yaml:"table_finder"`
	Decoder     string `json:"decoder" yaml:"decoder"`
	LobbyTitle  string `json:"lobby_title,omitempty" yaml:"lobby_title,omitempty"`
	RequireGame bool   `json:"require_game,omitempty" yaml:"require_game,omitempty"`
}

// Config represents the application configuration
type Config struct {
	LogLevel   string       `json:"log_level" yaml:"log_level"`
	ServerPort int          `json:"server_port" yaml:"server_port"`
	Source     string       `json:"source" yaml:"source"`
	Sites      []SiteConfig `json:"sites" yaml:"sites"`
}

// Keys accepted by Manager.Set
const (
	KeyLogLevel   = "log_level"
	KeyServerPort = "server_port"
	KeySource     = "source"
)

// Defaults returns the built-in configuration. Finders ignore case since
// KWin reports Wine clients by their lower-cased executable name.
func Defaults() *Config {
	return &Config{
		LogLevel:   "info",
		ServerPort: 8080,
		Source:     window.SourceAuto,
		Sites: []SiteConfig{
			{
				Name:        "PokerStars",
				TableFinder: `(?i)PokerStars\.exe`,
				Decoder:     table.KindMetadata,
			},
			{
				Name:        "Full Tilt",
				TableFinder: `(?i)FullTiltPoker`,
				Decoder:     table.KindGeneric,
				LobbyTitle:  "Full Tilt Poker",
			},
		},
	}
}

// Validate checks the configuration for values discovery cannot work with
func (c *Config) Validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server_port %d (must be 1-65535)", c.ServerPort)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (use: debug, info, warn, error)", c.LogLevel)
	}
	if !window.ValidSourceName(c.Source) {
		return fmt.Errorf("invalid source %q (use: %s)", c.Source, strings.Join(window.SourceNames, ", "))
	}
	if len(c.Sites) == 0 {
		return fmt.Errorf("no sites configured")
	}

	seen := make(map[string]bool, len(c.Sites))
	for i, s := range c.Sites {
		if err := s.validate(); err != nil {
			return fmt.Errorf("sites[%d]: %w", i, err)
		}
		key := strings.ToLower(s.Name)
		if seen[key] {
			return fmt.Errorf("sites[%d]: duplicate site_name %q", i, s.Name)
		}
		seen[key] = true
	}
	return nil
}

func (s SiteConfig) validate() error {
	if s.Name == "" {
		return fmt.Errorf("site_name is required")
	}
	if s.TableFinder == "" {
		return fmt.Errorf("site %s: table_finder is required", s.Name)
	}
	if _, err := regexp.Compile(s.TableFinder); err != nil {
		return fmt.Errorf("site %s: invalid table_finder: %w", s.Name, err)
	}
	if _, err := table.NewDecoder(s.Decoder, table.Options{}); err != nil {
		return fmt.Errorf("site %s: %w", s.Name, err)
	}
	return nil
}

// SiteSpecs converts the configured sites into matcher input, in order
func (c *Config) SiteSpecs() []site.Spec {
	specs := make([]site.Spec, 0, len(c.Sites))
	for _, s := range c.Sites {
		specs = append(specs, site.Spec{
			Name:        s.Name,
			TableFinder: s.TableFinder,
			Decoder:     s.Decoder,
			LobbyTitle:  s.LobbyTitle,
			RequireGame: s.RequireGame,
		})
	}
	return specs
}

// Manager handles configuration
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// DefaultConfigPath returns $HOME/.config/tablescout/config.yaml
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tablescout", "config.yaml"), nil
}

// NewManager creates a new configuration manager. The file is created with
// defaults when it does not exist.
func NewManager(configFile string) (*Manager, error) {
	actualConfigPath := configFile
	if actualConfigPath == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		actualConfigPath = p
	}

	m := &Manager{
		configPath: actualConfigPath,
	}

	if err := m.load(); err != nil {
		if os.IsNotExist(err) {
			logger.WithComponent("config").Info().
				Str("path", m.configPath).
				Msg("Config file not found, creating new config")
			m.config = Defaults()
			if err := m.Save(); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Int("sites", len(m.config.Sites)).
		Msg("Config loaded")

	return m, nil
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	// Missing keys fall back to defaults; an empty sites list does not.
	defaults := Defaults()
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.ServerPort == 0 {
		cfg.ServerPort = defaults.ServerPort
	}
	if cfg.Source == "" {
		cfg.Source = defaults.Source
	}
	if cfg.Sites == nil {
		cfg.Sites = defaults.Sites
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", m.configPath, err)
	}

	m.mu.Lock()
	m.config = &cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return Defaults()
	}

	cfg := *m.config
	cfg.Sites = append([]SiteConfig(nil), m.config.Sites...)
	return &cfg
}

// Save saves the current configuration to disk
func (m *Manager) Save() error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if cfg == nil {
		cfg = Defaults()
	}

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		logger.WithComponent("config").Error().
			Err(err).
			Str("path", m.configPath).
			Msg("Failed to write config")
		return err
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Msg("Config saved")
	return nil
}

// update applies fn to a copy of the configuration, validates the result
// and persists it. The in-memory config is left untouched on error.
func (m *Manager) update(fn func(cfg *Config) error) error {
	m.mu.Lock()
	next := *m.config
	next.Sites = append([]SiteConfig(nil), m.config.Sites...)
	if err := fn(&next); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := next.Validate(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.config = &next
	m.mu.Unlock()

	return m.Save()
}

// AddSite appends a site. Sites are matched in order, so the new site only
// wins windows none of the existing sites claim.
func (m *Manager) AddSite(s SiteConfig) error {
	return m.update(func(cfg *Config) error {
		for _, existing := range cfg.Sites {
			if strings.EqualFold(existing.Name, s.Name) {
				return fmt.Errorf("site %s already configured", s.Name)
			}
		}
		cfg.Sites = append(cfg.Sites, s)
		return nil
	})
}

// RemoveSite removes a site by name (case-insensitive)
func (m *Manager) RemoveSite(name string) error {
	return m.update(func(cfg *Config) error {
		for i, existing := range cfg.Sites {
			if strings.EqualFold(existing.Name, name) {
				cfg.Sites = append(cfg.Sites[:i], cfg.Sites[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("site %s not found", name)
	})
}

// SetPort sets the server port
func (m *Manager) SetPort(port int) error {
	return m.update(func(cfg *Config) error {
		cfg.ServerPort = port
		return nil
	})
}

// SetLogLevel sets the log level
func (m *Manager) SetLogLevel(level string) error {
	return m.update(func(cfg *Config) error {
		cfg.LogLevel = level
		return nil
	})
}

// SetSource sets the window source name
func (m *Manager) SetSource(source string) error {
	return m.update(func(cfg *Config) error {
		cfg.Source = source
		return nil
	})
}

// Set assigns a scalar configuration key from its string form
func (m *Manager) Set(key, value string) error {
	switch key {
	case KeyServerPort:
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port number: %s", value)
		}
		return m.SetPort(port)
	case KeyLogLevel:
		return m.SetLogLevel(value)
	case KeySource:
		return m.SetSource(value)
	default:
		return fmt.Errorf("unknown configuration key: %s (use: %s, %s, %s)", key, KeyLogLevel, KeyServerPort, KeySource)
	}
}

// GetConfigPath returns the path to the configuration file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}
