package cmd

import (
	"fmt"
	"strings"
	"time"
)

const defaultStatsCacheTTL = 30 * time.Second

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	RedisAddr              string
	StatsCacheTTL          string
	ReconcileSchedule      string
	OveragePolicy          string
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas. Empty means event publishing is off.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// CacheTTL parses STATS_CACHE_TTL, defaulting to 30s.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.StatsCacheTTL == "" {
		return defaultStatsCacheTTL, nil
	}
	ttl, err := time.ParseDuration(c.StatsCacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid STATS_CACHE_TTL %q: %w", c.StatsCacheTTL, err)
	}
	if ttl <= 0 {
		return 0, fmt.Errorf("invalid STATS_CACHE_TTL %q: must be positive", c.StatsCacheTTL)
	}
	return ttl, nil
}
