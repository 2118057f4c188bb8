package config

import (
	"os"
	"strconv"
	"time"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ServerConfig struct {
	MetricsAddr string `yaml:"metrics_addr"`
}

// GoogleConfig locates the OAuth client secrets and cached token used to
// reach the Calendar, Gmail and People APIs.
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	CalendarID      string `yaml:"calendar_id"`
	MaxResults      int    `yaml:"max_results"`
}

type JobsConfig struct {
	ReminderSweepInterval time.Duration `yaml:"reminder_sweep_interval"`
	CalendarSyncInterval  time.Duration `yaml:"calendar_sync_interval"`
	IngestInterval        time.Duration `yaml:"ingest_interval"`
}

// UnmarshalYAML accepts durations in Go string form ("30s", "5m") since
// yaml.v3 only decodes integers into time.Duration.
func (c *JobsConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		ReminderSweepInterval string `yaml:"reminder_sweep_interval"`
		CalendarSyncInterval  string `yaml:"calendar_sync_interval"`
		IngestInterval        string `yaml:"ingest_interval"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	set := func(dst *time.Duration, s string) error {
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}

	if err := set(&c.ReminderSweepInterval, raw.ReminderSweepInterval); err != nil {
		return err
	}
	if err := set(&c.CalendarSyncInterval, raw.CalendarSyncInterval); err != nil {
		return err
	}
	return set(&c.IngestInterval, raw.IngestInterval)
}

func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

func OverrideServerFromEnv(cfg *ServerConfig) {
	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		cfg.MetricsAddr = addr
	}
}

func OverrideGoogleFromEnv(cfg *GoogleConfig) {
	if f := os.Getenv("GOOGLE_CREDENTIALS_FILE"); f != "" {
		cfg.CredentialsFile = f
	}
	if f := os.Getenv("GOOGLE_TOKEN_FILE"); f != "" {
		cfg.TokenFile = f
	}
	if id := os.Getenv("GOOGLE_CALENDAR_ID"); id != "" {
		cfg.CalendarID = id
	}
}
