package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"storyspark-api/domain"
)

const (
	defaultMaxRevisions    = 2
	defaultProviderTimeout = 60 * time.Second
	defaultRetryAttempts   = 3
	defaultRetryBaseDelay  = 500 * time.Millisecond
	defaultAgeMin          = 2
	defaultAgeMax          = 8
)

// PipelineConfig holds the orchestrator tunables. Everything is optional and
// falls back to the documented defaults.
type PipelineConfig struct {
	MaxRevisions    int
	ProviderTimeout time.Duration
	RetryAttempts   int
	RetryBaseDelay  time.Duration
	DefaultAgeRange domain.AgeRange
}

func GetPipelineConfig() (*PipelineConfig, error) {
	cfg := &PipelineConfig{
		MaxRevisions:    defaultMaxRevisions,
		ProviderTimeout: defaultProviderTimeout,
		RetryAttempts:   defaultRetryAttempts,
		RetryBaseDelay:  defaultRetryBaseDelay,
		DefaultAgeRange: domain.AgeRange{Min: defaultAgeMin, Max: defaultAgeMax},
	}

	if raw := os.Getenv("MAX_REVISIONS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			return nil, fmt.Errorf("failed to parse MAX_REVISIONS: %q", raw)
		}
		cfg.MaxRevisions = val
	}
	if raw := os.Getenv("PROVIDER_TIMEOUT_SECONDS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("failed to parse PROVIDER_TIMEOUT_SECONDS: %q", raw)
		}
		cfg.ProviderTimeout = time.Duration(val) * time.Second
	}
	if raw := os.Getenv("PROVIDER_RETRY_ATTEMPTS"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 {
			return nil, fmt.Errorf("failed to parse PROVIDER_RETRY_ATTEMPTS: %q", raw)
		}
		cfg.RetryAttempts = val
	}
	if raw := os.Getenv("TARGET_AGE_MIN"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TARGET_AGE_MIN: %q", raw)
		}
		cfg.DefaultAgeRange.Min = val
	}
	if raw := os.Getenv("TARGET_AGE_MAX"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TARGET_AGE_MAX: %q", raw)
		}
		cfg.DefaultAgeRange.Max = val
	}
	if cfg.DefaultAgeRange.Min > cfg.DefaultAgeRange.Max {
		return nil, fmt.Errorf("TARGET_AGE_MIN must not exceed TARGET_AGE_MAX")
	}

	return cfg, nil
}
