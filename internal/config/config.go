package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	HistoryLimit      int           `mapstructure:"history_limit" yaml:"history_limit"`
	Moderation        Moderation    `mapstructure:"moderation" yaml:"moderation"`
}

// Moderation holds the profanity policy settings. Threshold and duration are
// process-wide constants, never negotiated per message.
type Moderation struct {
	Words         []string      `mapstructure:"words" yaml:"words"`
	WarnThreshold int           `mapstructure:"warn_threshold" yaml:"warn_threshold"`
	MuteThreshold int           `mapstructure:"mute_threshold" yaml:"mute_threshold"`
	MuteDuration  time.Duration `mapstructure:"mute_duration" yaml:"mute_duration"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		DatabasePath:      "citychat.db",
		HistoryLimit:      50,
		Moderation: Moderation{
			Words:         nil,
			WarnThreshold: 2,
			MuteThreshold: 3,
			MuteDuration:  10 * time.Minute,
		},
	}
}
