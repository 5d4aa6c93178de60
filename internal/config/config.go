package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DiscordToken      string       `yaml:"discord_token"`
	OwnerID           string       `yaml:"owner_id"`
	Prefix            string       `yaml:"prefix"`
	DatabasePath      string       `yaml:"database_path"`
	LogLevel          string       `yaml:"log_level"`
	MuteRoleName      string       `yaml:"mute_role_name"`
	NoticeSeconds     int          `yaml:"notice_seconds"`
	MuteSweepSeconds  int          `yaml:"mute_sweep_seconds"`
	DefaultWarnReason string       `yaml:"default_warn_reason"`
	Health            HealthConfig `yaml:"health"`
}

type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

func DefaultConfig() Config {
	return Config{
		Prefix:            "$",
		DatabasePath:      "/data/warden.db",
		LogLevel:          "info",
		MuteRoleName:      "Muted",
		NoticeSeconds:     5,
		MuteSweepSeconds:  30,
		DefaultWarnReason: "No reason provided",
		Health:            HealthConfig{Enabled: false, Addr: ":8080"},
	}
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.OwnerID == "" {
		return Config{}, errors.New("OWNER_ID is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "$"
	}
	if cfg.NoticeSeconds <= 0 {
		cfg.NoticeSeconds = 5
	}
	if cfg.MuteSweepSeconds <= 0 {
		cfg.MuteSweepSeconds = 30
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DiscordToken = envString("DISCORD_TOKEN", cfg.DiscordToken)
	cfg.OwnerID = envString("OWNER_ID", cfg.OwnerID)
	cfg.Prefix = envString("COMMAND_PREFIX", cfg.Prefix)
	cfg.DatabasePath = envString("DATABASE_PATH", cfg.DatabasePath)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.MuteRoleName = envString("MUTE_ROLE_NAME", cfg.MuteRoleName)
	cfg.NoticeSeconds = envInt("NOTICE_SECONDS", cfg.NoticeSeconds)
	cfg.MuteSweepSeconds = envInt("MUTE_SWEEP_SECONDS", cfg.MuteSweepSeconds)
	cfg.Health.Enabled = envBool("HEALTH_ENABLED", cfg.Health.Enabled)
	cfg.Health.Addr = envString("HEALTH_ADDR", cfg.Health.Addr)
}

func BuildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl := strings.ToLower(level)
	switch lvl {
	case "debug", "info", "warn", "error":
		cfg.Level = zap.NewAtomicLevelAt(parseLevel(lvl))
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(value)
		return lower == "1" || lower == "true" || lower == "yes"
	}
	return fallback
}
