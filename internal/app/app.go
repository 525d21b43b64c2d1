package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/analytics"
	"github.com/bobmcallan/folio/internal/storage"
)

const configFileName = "folio.toml"

// App holds the initialized store and analytics service.
// It is the shared core used by both cmd/folio-server and cmd/folio.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Store       interfaces.SnapshotStore
	Analytics   interfaces.AnalyticsService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// resolveConfigPath picks the config file: the explicit path, FOLIO_CONFIG,
// folio.toml beside the binary, then config/folio.toml for development.
// baseDir is the directory relative paths in the config resolve against.
func resolveConfigPath(configPath, binDir string) (path, baseDir string) {
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath != "" {
		return configPath, ""
	}
	candidate := filepath.Join(binDir, configFileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, binDir
	}
	return filepath.Join("config", configFileName), ""
}

// NewApp loads configuration and wires the snapshot store into the
// analytics service. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	path, baseDir := resolveConfigPath(configPath, getBinaryDir())

	config, err := common.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.ResolvePaths(baseDir)

	logger := common.NewLoggerFromConfig(config.Logging)

	a := New(config, logger)
	a.StartupTime = startupStart

	logger.Info().
		Str("config", path).
		Str("startup", time.Since(startupStart).String()).
		Msg("App initialized")

	return a, nil
}

// New wires an App from an already loaded configuration.
func New(config *common.Config, logger *common.Logger) *App {
	store := storage.NewFileStore(logger, &config.Snapshots)
	return &App{
		Config:      config,
		Logger:      logger,
		Store:       store,
		Analytics:   analytics.NewService(store, config.Chart, logger),
		StartupTime: time.Now(),
	}
}
