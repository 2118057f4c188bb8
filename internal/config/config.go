package config

import (
	"log"
	"time"

	"gopkg.in/yaml.v3"

	"dayplanner/pkg/config"
)

type Config struct {
	DB     config.DBConfig     `yaml:"db"`
	Redis  config.RedisConfig  `yaml:"redis"`
	Server config.ServerConfig `yaml:"server"`
	Google config.GoogleConfig `yaml:"google"`
	Jobs   config.JobsConfig   `yaml:"jobs"`
}

// Load reads the layered yaml configuration and applies environment
// overrides. Missing job intervals fall back to defaults so a minimal
// config file still yields a runnable daemon.
func Load() *Config {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var cfg Config
	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		log.Fatalf("failed to marshal config: %v", err)
	}
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideGoogleFromEnv(&cfg.Google)

	if cfg.Jobs.ReminderSweepInterval <= 0 {
		cfg.Jobs.ReminderSweepInterval = 30 * time.Second
	}
	if cfg.Jobs.CalendarSyncInterval <= 0 {
		cfg.Jobs.CalendarSyncInterval = 60 * time.Second
	}
	if cfg.Jobs.IngestInterval <= 0 {
		cfg.Jobs.IngestInterval = 5 * time.Minute
	}
	if cfg.Server.MetricsAddr == "" {
		cfg.Server.MetricsAddr = ":9090"
	}

	return &cfg
}
