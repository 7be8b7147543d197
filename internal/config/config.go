// Package config provides configuration management for the flipbook viewer.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/types"
)

const (
	// DefaultConfigFileName is the default configuration file name
	DefaultConfigFileName = "flipbook-viewer-config.json"
	// DefaultMinZoom is the lower zoom clamp
	DefaultMinZoom = 0.5
	// DefaultMaxZoom is the upper zoom clamp
	DefaultMaxZoom = 3.0
	// DefaultZoomStep is the discrete zoom increment for toolbar controls
	DefaultZoomStep = 0.25
	// DefaultSupersampleFactor oversamples rasterization for high-density displays
	DefaultSupersampleFactor = 2
	// DefaultFloorWidth is the minimum planned page width in pixels
	DefaultFloorWidth = 300
	// DefaultFloorHeight is the minimum planned page height in pixels
	DefaultFloorHeight = 400
	// DefaultSinglePreload is the preload radius around the current page in single mode
	DefaultSinglePreload = 2
	// DefaultDoublePreload is the forward preload distance in double mode
	DefaultDoublePreload = 4
	// DefaultFlipLookahead is the eager render window past a turn target
	DefaultFlipLookahead = 6
	// DefaultResizeThreshold is the base-width delta in px that invalidates the cache
	DefaultResizeThreshold = 50
	// DefaultRenderConcurrency bounds parallel page renders in batch operations
	DefaultRenderConcurrency = 3
	// DefaultMaxDownloadSizeMB caps fetched document size
	DefaultMaxDownloadSizeMB = 100
)

// ConfigManager manages application configuration
type ConfigManager struct {
	configPath string
	config     *types.Config
}

// NewConfigManager creates a new ConfigManager with the specified config path.
// If configPath is empty, it uses the default path in the user's home directory.
func NewConfigManager(configPath string) (*ConfigManager, error) {
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			logger.Error("failed to get user home directory", err)
			return nil, types.NewAppError(types.ErrConfig, "failed to get user home directory", err)
		}
		configPath = filepath.Join(homeDir, ".config", "flipbook-viewer", DefaultConfigFileName)
	}

	logger.Info("ConfigManager initialized", logger.String("configPath", configPath))
	return &ConfigManager{
		configPath: configPath,
		config:     defaultConfig(),
	}, nil
}

// defaultConfig returns a Config with default values
func defaultConfig() *types.Config {
	return &types.Config{
		MinZoom:           DefaultMinZoom,
		MaxZoom:           DefaultMaxZoom,
		ZoomStep:          DefaultZoomStep,
		SupersampleFactor: DefaultSupersampleFactor,
		FloorWidth:        DefaultFloorWidth,
		FloorHeight:       DefaultFloorHeight,
		SinglePreload:     DefaultSinglePreload,
		DoublePreload:     DefaultDoublePreload,
		FlipLookahead:     DefaultFlipLookahead,
		ResizeThreshold:   DefaultResizeThreshold,
		RenderConcurrency: DefaultRenderConcurrency,
		MaxDownloadSizeMB: DefaultMaxDownloadSizeMB,
	}
}

// Load loads configuration from the config file.
// If the file doesn't exist, it uses default values.
func (m *ConfigManager) Load() error {
	logger.Debug("loading configuration", logger.String("path", m.configPath))

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("config file not found, using defaults", logger.String("path", m.configPath))
			m.config = defaultConfig()
			return nil
		}
		logger.Error("failed to read config file", err, logger.String("path", m.configPath))
		return types.NewAppError(types.ErrConfig, "failed to read config file", err)
	}

	config := &types.Config{}
	if err := json.Unmarshal(data, config); err != nil {
		// Invalid JSON, fall back to defaults rather than refusing to start
		logger.Warn("invalid config file format, using defaults", logger.String("path", m.configPath), logger.Err(err))
		m.config = defaultConfig()
		return nil
	}

	m.config = config
	m.applyDefaults()
	logger.Info("configuration loaded", logger.String("path", m.configPath))
	return nil
}

// applyDefaults fills zero-valued fields with defaults so a hand-edited
// partial config file still yields a usable configuration.
func (m *ConfigManager) applyDefaults() {
	d := defaultConfig()
	if m.config.MinZoom <= 0 {
		m.config.MinZoom = d.MinZoom
	}
	if m.config.MaxZoom <= m.config.MinZoom {
		m.config.MaxZoom = d.MaxZoom
	}
	if m.config.ZoomStep <= 0 {
		m.config.ZoomStep = d.ZoomStep
	}
	if m.config.SupersampleFactor < 2 {
		m.config.SupersampleFactor = d.SupersampleFactor
	}
	if m.config.FloorWidth <= 0 {
		m.config.FloorWidth = d.FloorWidth
	}
	if m.config.FloorHeight <= 0 {
		m.config.FloorHeight = d.FloorHeight
	}
	if m.config.SinglePreload <= 0 {
		m.config.SinglePreload = d.SinglePreload
	}
	if m.config.DoublePreload <= 0 {
		m.config.DoublePreload = d.DoublePreload
	}
	if m.config.FlipLookahead <= 0 {
		m.config.FlipLookahead = d.FlipLookahead
	}
	if m.config.ResizeThreshold <= 0 {
		m.config.ResizeThreshold = d.ResizeThreshold
	}
	if m.config.RenderConcurrency <= 0 {
		m.config.RenderConcurrency = d.RenderConcurrency
	}
	if m.config.MaxDownloadSizeMB <= 0 {
		m.config.MaxDownloadSizeMB = d.MaxDownloadSizeMB
	}
}

// Save writes the current configuration to the config file.
func (m *ConfigManager) Save() error {
	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("failed to create config directory", err, logger.String("dir", dir))
		return types.NewAppError(types.ErrConfig, "failed to create config directory", err)
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return types.NewAppError(types.ErrConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		logger.Error("failed to write config file", err, logger.String("path", m.configPath))
		return types.NewAppError(types.ErrConfig, "failed to write config file", err)
	}

	logger.Debug("configuration saved", logger.String("path", m.configPath))
	return nil
}

// Get returns the current configuration
func (m *ConfigManager) Get() *types.Config {
	return m.config
}

// GetConfigPath returns the configuration file path
func (m *ConfigManager) GetConfigPath() string {
	return m.configPath
}

// Update replaces the current configuration and persists it
func (m *ConfigManager) Update(config *types.Config) error {
	m.config = config
	m.applyDefaults()
	return m.Save()
}
