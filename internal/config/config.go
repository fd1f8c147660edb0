// Package config loads the client configuration from file and environment.
// Priority: environment variables > config file > defaults.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Platform   PlatformConfig   `mapstructure:"platform"`
	DeviceInfo DeviceInfoConfig `mapstructure:"device_info"`
	Playback   PlaybackConfig   `mapstructure:"playback"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the local HTTP API configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// PlatformConfig holds the engine version signals read once at startup. The
// format of either signal is not controlled here, only parsed.
type PlatformConfig struct {
	EngineVersion       string `mapstructure:"engine_version"`
	LegacyEngineVersion string `mapstructure:"legacy_engine_version"`
}

// DeviceInfoConfig points at the native device-info bridge.
type DeviceInfoConfig struct {
	ServiceURL string        `mapstructure:"service_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// PlaybackConfig holds the bitrate and channel ceilings advertised to the
// media server.
type PlaybackConfig struct {
	MaxStreamingBitrate              int `mapstructure:"max_streaming_bitrate"`
	MaxStaticBitrate                 int `mapstructure:"max_static_bitrate"`
	MusicStreamingTranscodingBitrate int `mapstructure:"music_streaming_transcoding_bitrate"`
	MaxAudioChannels                 int `mapstructure:"max_audio_channels"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

var (
	current *Config
	mu      sync.RWMutex
)

// Load reads configuration into the process-wide Config.
func Load(configPath string) error {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("lumitv")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/lumitv")
	}

	v.SetEnvPrefix("LUMITV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	mu.Lock()
	current = cfg
	mu.Unlock()
	return nil
}

// Get returns the loaded configuration, falling back to defaults when Load
// was never called.
func Get() *Config {
	mu.RLock()
	cfg := current
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	v := viper.New()
	setDefaults(v)
	fallback := &Config{}
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(fallback)

	mu.Lock()
	if current == nil {
		current = fallback
	}
	cfg = current
	mu.Unlock()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 9290)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)

	v.SetDefault("platform.engine_version", "")
	v.SetDefault("platform.legacy_engine_version", "")

	v.SetDefault("device_info.service_url", "http://127.0.0.1:9291/deviceinfo")
	v.SetDefault("device_info.timeout", 5*time.Second)

	v.SetDefault("playback.max_streaming_bitrate", 120_000_000)
	v.SetDefault("playback.max_static_bitrate", 100_000_000)
	v.SetDefault("playback.music_streaming_transcoding_bitrate", 384_000)
	v.SetDefault("playback.max_audio_channels", 6)

	v.SetDefault("logging.level", "info")
}
