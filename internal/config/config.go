// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Engine() EngineConfig
	Layout() LayoutConfig

	// Engine setters
	SetEngineWorkers(int)
	SetEngineCacheMaxParents(int)
	SetEngineCacheMaxContexts(int)

	// Layout setters
	SetLayoutViewport(width, height float64)
}

// Config holds the entire application configuration. Private fields
// enforce access through the Interface's getter methods.
type Config struct {
	logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	engine EngineConfig `mapstructure:"engine" yaml:"engine"`
	layout LayoutConfig `mapstructure:"layout" yaml:"layout"`
}

// --- Interface method implementations (getters) ---

func (c *Config) Logger() LoggerConfig { return c.logger }
func (c *Config) Engine() EngineConfig { return c.engine }
func (c *Config) Layout() LayoutConfig { return c.layout }

// --- Setters ---

func (c *Config) SetEngineWorkers(n int)          { c.engine.Workers = n }
func (c *Config) SetEngineCacheMaxParents(n int)  { c.engine.CacheMaxParents = n }
func (c *Config) SetEngineCacheMaxContexts(n int) { c.engine.CacheMaxContexts = n }

func (c *Config) SetLayoutViewport(width, height float64) {
	c.layout.ViewportWidth = width
	c.layout.ViewportHeight = height
}

// ColorConfig maps log levels to terminal colors for console output.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// LoggerConfig controls the zap logger: level, encoding, and the optional
// rotating file sink.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// EngineConfig tunes the grid preprocessing engine.
type EngineConfig struct {
	// Workers is the goroutine count for batch parent-context resolution.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// CacheMaxParents bounds the parent-link level of each resolver cache.
	CacheMaxParents int `mapstructure:"cache_max_parents" yaml:"cache_max_parents"`
	// CacheMaxContexts bounds the extracted-context level of each cache.
	CacheMaxContexts int `mapstructure:"cache_max_contexts" yaml:"cache_max_contexts"`
}

// LayoutConfig sets the available space used when a scene does not
// declare its own container size.
type LayoutConfig struct {
	ViewportWidth  float64 `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight float64 `mapstructure:"viewport_height" yaml:"viewport_height"`
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := NewConfigFromViper(v)
	if err != nil {
		// This should not happen with defaults, but good to be safe.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return cfg
}

// SetDefaults initializes default values for all configuration keys.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "gridcore")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "red")
	v.SetDefault("logger.colors.panic", "red")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Engine --
	v.SetDefault("engine.workers", 4)
	v.SetDefault("engine.cache_max_parents", 1024)
	v.SetDefault("engine.cache_max_contexts", 256)

	// -- Layout --
	v.SetDefault("layout.viewport_width", 1280.0)
	v.SetDefault("layout.viewport_height", 720.0)
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	// The exported mirror exists because viper cannot unmarshal into
	// unexported fields.
	var raw struct {
		Logger LoggerConfig `mapstructure:"logger"`
		Engine EngineConfig `mapstructure:"engine"`
		Layout LayoutConfig `mapstructure:"layout"`
	}
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg := &Config{logger: raw.Logger, engine: raw.Engine, layout: raw.Layout}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants that would otherwise surface
// as confusing runtime behavior.
func (c *Config) Validate() error {
	if c.engine.Workers < 1 {
		return fmt.Errorf("engine.workers must be at least 1, got %d", c.engine.Workers)
	}
	if c.engine.CacheMaxParents < 1 {
		return fmt.Errorf("engine.cache_max_parents must be at least 1, got %d", c.engine.CacheMaxParents)
	}
	if c.engine.CacheMaxContexts < 1 {
		return fmt.Errorf("engine.cache_max_contexts must be at least 1, got %d", c.engine.CacheMaxContexts)
	}
	if c.layout.ViewportWidth < 0 || c.layout.ViewportHeight < 0 {
		return fmt.Errorf("layout viewport must not be negative, got %.1fx%.1f",
			c.layout.ViewportWidth, c.layout.ViewportHeight)
	}
	return nil
}
