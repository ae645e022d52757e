package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// TargetAvailabilityPercent applies to requests that omit their own
	// SLA target.
	TargetAvailabilityPercent float64

	// AssessCacheSize bounds the HTTP response memo (entries).
	AssessCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	flushInterval, err := parseDurationEnv("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	batchSize, err := parsePositiveIntEnv("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parsePositiveIntEnv("ASSESS_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}

	target, err := parseTargetAvailability()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:              parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:          envOrDefault("KAFKA_SOURCE_TOPIC", "station-assessment-requests"),
		KafkaSinkTopic:            envOrDefault("KAFKA_SINK_TOPIC", "station-weather-assessments"),
		KafkaGroupID:              envOrDefault("KAFKA_GROUP_ID", "link-impact-assessor"),
		HTTPAddr:                  envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:                  envOrDefault("LOG_LEVEL", "info"),
		LogFormat:                 envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:           shutdownTimeout,
		BatchSize:                 batchSize,
		BatchFlushInterval:        flushInterval,
		TargetAvailabilityPercent: target,
		AssessCacheSize:           cacheSize,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parsePositiveIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseTargetAvailability() (float64, error) {
	s := os.Getenv("TARGET_AVAILABILITY")
	if s == "" {
		return 99.5, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || v > 100 {
		return 0, fmt.Errorf("invalid TARGET_AVAILABILITY: %q", s)
	}
	return v, nil
}
