package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/bryanchriswhite/TableScout/internal/config"
	"github.com/bryanchriswhite/TableScout/internal/discovery"
	"github.com/bryanchriswhite/TableScout/internal/logger"
	"github.com/bryanchriswhite/TableScout/internal/site"
	"github.com/bryanchriswhite/TableScout/internal/window"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	jsonLogs bool
	rootCmd  = &cobra.Command{
		Use:   "tablescout",
		Short: "TableScout - find poker table windows",
		Long: `TableScout finds the windows of running poker clients and reads each
table's identity from its window title: table name, tournament and table
number, game, betting structure and seat count, plus the on-screen geometry
of the playable area.

Features:
  • Window enumeration via xwininfo, X11 (EWMH), KWin (D-Bus) or Win32
  • Per-site table finders and title decoders
  • Lookup by table name or by tournament and table number
  • Persistent YAML configuration
  • REST and WebSocket API for overlays`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Re-initialized with the configured level once the config is read.
			logger.Init(viper.GetString("log_level"), !jsonLogs)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tablescout/config.yaml)")
	rootCmd.PersistentFlags().Int("port", 0, "server port (default is 8080)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("source", "", "window source ("+strings.Join(window.SourceNames, ", ")+")")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as JSON instead of console format")

	// Bind flags to viper
	viper.BindPFlag("server_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
}

func initConfig() {
	// TABLESCOUT_LOG_LEVEL, TABLESCOUT_SERVER_PORT, TABLESCOUT_SOURCE
	viper.SetEnvPrefix("tablescout")
	viper.AutomaticEnv()
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// loadConfig reads the config file and applies flag and environment
// overrides. Overrides are not written back to the file.
func loadConfig() (*config.Manager, *config.Config, error) {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := configMgr.Get()
	if port := viper.GetInt("server_port"); port > 0 {
		cfg.ServerPort = port
	}
	if level := viper.GetString("log_level"); level != "" {
		cfg.LogLevel = level
	}
	if source := viper.GetString("source"); source != "" {
		cfg.Source = source
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger.Init(cfg.LogLevel, !jsonLogs)
	return configMgr, cfg, nil
}

// newFinder opens the configured window source and compiles the sites.
// The caller closes the returned source.
func newFinder(cfg *config.Config) (*discovery.Finder, window.Source, error) {
	matcher, err := site.NewMatcher(cfg.SiteSpecs()...)
	if err != nil {
		return nil, nil, err
	}

	src, err := window.NewSource(cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open window source: %w", err)
	}
	return discovery.NewFinder(src, matcher), src, nil
}
