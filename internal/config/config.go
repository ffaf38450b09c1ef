package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nweber28/espn-fantasy-baseball-tools/pkg/types"
)

// Config holds all runtime configuration for the analytics service.
type Config struct {
	Env         string `mapstructure:"env"`
	Port        string `mapstructure:"port"`
	ServiceName string `mapstructure:"service_name"`

	RedisURL string        `mapstructure:"redis_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// League platform session: league identifier plus the opaque cookie
	// credentials passed through to the upstream API.
	LeagueID string `mapstructure:"league_id"`
	SeasonID int    `mapstructure:"season_id"`
	SWID     string `mapstructure:"swid"`
	EspnS2   string `mapstructure:"espn_s2"`

	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	RosterSlots types.RosterSlots `mapstructure:"roster_slots"`
}

// DefaultRosterSlots is the league's standard lineup shape, used when no
// slot configuration is supplied.
func DefaultRosterSlots() types.RosterSlots {
	return types.RosterSlots{
		"C":              1,
		"1B":             1,
		"2B":             1,
		"3B":             1,
		"SS":             1,
		"OF":             3,
		types.SlotUtility: 1,
		types.SlotPitcher: 7,
		types.SlotBench:   3,
	}
}

// LoadConfig reads configuration from the environment and an optional
// config.yaml, with environment variables taking precedence.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("port", "8084")
	v.SetDefault("service_name", "roster-analytics")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache_ttl", time.Hour)
	v.SetDefault("season_id", 2025)
	v.SetDefault("fetch_timeout", 30*time.Second)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.RosterSlots) == 0 {
		cfg.RosterSlots = DefaultRosterSlots()
	}

	return &cfg, nil
}

// IsDevelopment reports whether the service is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
