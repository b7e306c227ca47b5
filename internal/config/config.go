// Package config defines the bot's configuration and its loading rules.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeFile   = "file"
	StorageTypeRedis  = "redis"
)

// Config contains process configuration
type Config struct {
	// Token is the platform access credential
	Token string `koanf:"token"`

	// ChannelName is the designated channel watched for submissions and
	// targeted by broadcasts
	ChannelName string `koanf:"channel_name"`

	// CommandPrefix introduces bot commands in chat
	CommandPrefix string `koanf:"command_prefix"`

	// BroadcastHour and BroadcastMinute set the daily broadcast time (UTC)
	BroadcastHour   int `koanf:"broadcast_hour"`
	BroadcastMinute int `koanf:"broadcast_minute"`

	// BroadcastWeekday names the weekly broadcast day, e.g. "Sunday"
	BroadcastWeekday string `koanf:"broadcast_weekday"`

	// StorageType selects the storage backend: memory, file or redis
	StorageType string `koanf:"storage_type"`

	// DataDir is the file backend's record directory
	DataDir string `koanf:"data_dir"`

	// RedisURL is the redis backend's connection URL
	RedisURL string `koanf:"redis_url"`

	// Addr is the health/metrics HTTP listen address
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error
	LogLevel string `koanf:"log_level"`
}

// New returns a Config with defaults
func New() *Config {
	return &Config{
		ChannelName:      "connections",
		CommandPrefix:    "!",
		BroadcastHour:    21,
		BroadcastMinute:  0,
		BroadcastWeekday: "Sunday",
		StorageType:      StorageTypeFile,
		DataDir:          "data",
		RedisURL:         "redis://localhost:6379",
		Addr:             ":8080",
		LogLevel:         "info",
	}
}

// Weekday resolves BroadcastWeekday to a time.Weekday
func (c *Config) Weekday() (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(c.BroadcastWeekday, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid broadcast weekday %q", c.BroadcastWeekday)
}

// Validate checks values that would otherwise fail deep inside startup
func (c *Config) Validate() error {
	if c.BroadcastHour < 0 || c.BroadcastHour > 23 {
		return fmt.Errorf("broadcast hour must be 0-23, got %d", c.BroadcastHour)
	}
	if c.BroadcastMinute < 0 || c.BroadcastMinute > 59 {
		return fmt.Errorf("broadcast minute must be 0-59, got %d", c.BroadcastMinute)
	}
	if _, err := c.Weekday(); err != nil {
		return err
	}
	switch c.StorageType {
	case StorageTypeMemory, StorageTypeFile, StorageTypeRedis:
	default:
		return fmt.Errorf("invalid storage type %q: must be memory, file or redis", c.StorageType)
	}
	if c.ChannelName == "" {
		return fmt.Errorf("channel name must not be empty")
	}
	return nil
}
