package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	envPrefix = "MEDIABRIDGE"

	defaultPollInterval     = 500 * time.Millisecond
	defaultManagerTimeout   = 2 * time.Second
	defaultMetadataTimeout  = 800 * time.Millisecond
	defaultThumbnailTimeout = 700 * time.Millisecond
	defaultCallTimeout      = time.Second
	defaultLockName         = "mediabridge.reader"
	defaultLogLevel         = "info"
)

// Configuration keys
const (
	KeyPollInterval     = "poll_interval"
	KeyManagerTimeout   = "manager_timeout"
	KeyMetadataTimeout  = "metadata_timeout"
	KeyThumbnailTimeout = "thumbnail_timeout"
	KeyCallTimeout      = "call_timeout"
	KeyThumbnailMaxEdge = "thumbnail_max_edge"
	KeyLockName         = "lock_name"
	KeyLogLevel         = "log_level"
)

// New builds a viper instance with defaults, an optional config file
// and MEDIABRIDGE_* environment overrides (in increasing priority).
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault(KeyPollInterval, defaultPollInterval)
	v.SetDefault(KeyManagerTimeout, defaultManagerTimeout)
	v.SetDefault(KeyMetadataTimeout, defaultMetadataTimeout)
	v.SetDefault(KeyThumbnailTimeout, defaultThumbnailTimeout)
	v.SetDefault(KeyCallTimeout, defaultCallTimeout)
	v.SetDefault(KeyThumbnailMaxEdge, 0)
	v.SetDefault(KeyLockName, defaultLockName)
	v.SetDefault(KeyLogLevel, defaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	return v, nil
}

// AppConfig holds application configuration
type AppConfig struct {
	logger           *zap.Logger
	pollInterval     time.Duration
	managerTimeout   time.Duration
	metadataTimeout  time.Duration
	thumbnailTimeout time.Duration
	callTimeout      time.Duration
	thumbnailMaxEdge int
	lockName         string
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger, v *viper.Viper) *AppConfig {
	cfg := &AppConfig{
		logger:           logger,
		pollInterval:     positiveDuration(v.GetDuration(KeyPollInterval), defaultPollInterval),
		managerTimeout:   positiveDuration(v.GetDuration(KeyManagerTimeout), defaultManagerTimeout),
		metadataTimeout:  positiveDuration(v.GetDuration(KeyMetadataTimeout), defaultMetadataTimeout),
		thumbnailTimeout: positiveDuration(v.GetDuration(KeyThumbnailTimeout), defaultThumbnailTimeout),
		callTimeout:      positiveDuration(v.GetDuration(KeyCallTimeout), defaultCallTimeout),
		thumbnailMaxEdge: max(v.GetInt(KeyThumbnailMaxEdge), 0),
		lockName:         strings.TrimSpace(v.GetString(KeyLockName)),
	}
	if cfg.lockName == "" {
		cfg.lockName = defaultLockName
	}

	logger.Debug("Configuration loaded",
		zap.Duration("pollInterval", cfg.pollInterval),
		zap.Duration("managerTimeout", cfg.managerTimeout),
		zap.Duration("metadataTimeout", cfg.metadataTimeout),
		zap.Duration("thumbnailTimeout", cfg.thumbnailTimeout),
		zap.Int("thumbnailMaxEdge", cfg.thumbnailMaxEdge),
		zap.String("lockName", cfg.lockName))

	return cfg
}

// LogLevel returns the configured zap level, falling back to info
func LogLevel(v *viper.Viper) zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

// GetPollInterval returns the reader tick interval
func (c *AppConfig) GetPollInterval() time.Duration {
	return c.pollInterval
}

// GetManagerTimeout bounds session-manager acquisition
func (c *AppConfig) GetManagerTimeout() time.Duration {
	return c.managerTimeout
}

// GetMetadataTimeout bounds the media properties query
func (c *AppConfig) GetMetadataTimeout() time.Duration {
	return c.metadataTimeout
}

// GetThumbnailTimeout bounds opening the thumbnail stream
func (c *AppConfig) GetThumbnailTimeout() time.Duration {
	return c.thumbnailTimeout
}

// GetCallTimeout bounds a single synchronous property read
func (c *AppConfig) GetCallTimeout() time.Duration {
	return c.callTimeout
}

// GetThumbnailMaxEdge returns the longest allowed thumbnail edge (0 = unlimited)
func (c *AppConfig) GetThumbnailMaxEdge() int {
	return c.thumbnailMaxEdge
}

// GetLockName returns the name of the reader single-instance lock
func (c *AppConfig) GetLockName() string {
	return c.lockName
}

func positiveDuration(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
