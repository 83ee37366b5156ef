package config

import (
	"os"
	"strconv"

	"heliocorr/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Engine EngineConfig
	Risk   RiskConfig
	Alerts AlertConfig
}

// EngineConfig holds the analysis pipeline defaults. CLI flags override
// these per invocation.
type EngineConfig struct {
	Cadence        string
	MaxLag         int
	SeasonalPeriod int
	MinPoints      int
	Method         string
}

// RiskConfig tunes cycle risk classification
type RiskConfig struct {
	HighFraction   float64
	LowFraction    float64
	TrendWindow    int
	MinPeakSpacing int
}

// AlertConfig holds alert evaluation settings
type AlertConfig struct {
	Enabled              bool
	ActivityThreshold    float64
	CorrelationThreshold float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Engine: EngineConfig{
			Cadence:        getEnvOrDefault("RESAMPLE_CADENCE", "monthly"),
			MaxLag:         getEnvIntOrDefault("MAX_LAG", 365),
			SeasonalPeriod: getEnvIntOrDefault("SEASONAL_PERIOD", 132),
			MinPoints:      getEnvIntOrDefault("MIN_POINTS", 8),
			Method:         getEnvOrDefault("CORRELATION_METHOD", "cross_correlation"),
		},
		Risk: RiskConfig{
			HighFraction:   getEnvFloatOrDefault("RISK_HIGH_FRACTION", 0.7),
			LowFraction:    getEnvFloatOrDefault("RISK_LOW_FRACTION", 0.3),
			TrendWindow:    getEnvIntOrDefault("TREND_WINDOW", 12),
			MinPeakSpacing: getEnvIntOrDefault("MIN_PEAK_SPACING", 2),
		},
		Alerts: AlertConfig{
			Enabled:              getEnvBoolOrDefault("ALERTS_ENABLED", true),
			ActivityThreshold:    getEnvFloatOrDefault("ALERT_ACTIVITY_THRESHOLD", 150),
			CorrelationThreshold: getEnvFloatOrDefault("ALERT_CORRELATION_THRESHOLD", 0.5),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Engine.MinPoints < 4 {
		return errors.ConfigInvalid("MIN_POINTS must be at least 4")
	}
	if config.Risk.HighFraction <= config.Risk.LowFraction {
		return errors.ConfigInvalid("RISK_HIGH_FRACTION must exceed RISK_LOW_FRACTION")
	}
	if config.Alerts.CorrelationThreshold < 0 || config.Alerts.CorrelationThreshold > 1 {
		return errors.ConfigInvalid("ALERT_CORRELATION_THRESHOLD must be within [0, 1]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
