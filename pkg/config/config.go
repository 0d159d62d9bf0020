package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log     LogConfig
	Grading GradingConfig
	Reports ReportsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// GradingConfig carries per-assignment-type score multipliers.
type GradingConfig struct {
	TypeWeights map[string]float64
}

// ReportsConfig controls transcript/summary export output.
type ReportsConfig struct {
	Enabled    bool
	StorageDir string
	Formats    []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Grading = GradingConfig{
		TypeWeights: parseWeights(v.GetString("GRADE_TYPE_WEIGHTS")),
	}

	cfg.Reports = ReportsConfig{
		Enabled:    v.GetBool("ENABLE_REPORTS"),
		StorageDir: v.GetString("REPORTS_STORAGE_DIR"),
		Formats:    splitAndTrim(v.GetString("REPORTS_FORMATS")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GRADE_TYPE_WEIGHTS", "")

	v.SetDefault("ENABLE_REPORTS", false)
	v.SetDefault("REPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("REPORTS_FORMATS", "csv,pdf")
}

// parseWeights reads "quiz=1.2,project=0.9" style overrides. Malformed
// entries are skipped rather than failing the whole load.
func parseWeights(raw string) map[string]float64 {
	weights := make(map[string]float64)
	for _, part := range splitAndTrim(raw) {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || weight <= 0 {
			continue
		}
		weights[strings.ToLower(strings.TrimSpace(key))] = weight
	}
	return weights
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
