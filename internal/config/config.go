package config

import (
	"os"
	"strconv"

	"anonsurvey/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Surveys  SurveyConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// SurveyConfig holds survey parsing and pipeline defaults
type SurveyConfig struct {
	// Folder scanned for Pre*/Post* survey workbooks.
	Folder string
	// IDColumn names the column holding the raw student identifier.
	IDColumn string
	// ScoringFile is the workbook holding the category scoring sheet.
	ScoringFile string
	StripPrefix bool
	Anonymize   bool
	Overwrite   bool
	Color       bool
}

// DatabaseConfig holds the optional run-archive connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Surveys: SurveyConfig{
			Folder:      getEnvOrDefault("SURVEY_FOLDER", "."),
			IDColumn:    getEnvOrDefault("SURVEY_ID_COLUMN", "Your student number"),
			ScoringFile: getEnvOrDefault("SURVEY_SCORING_FILE", "Scoring.xlsx"),
			StripPrefix: getEnvBoolOrDefault("SURVEY_STRIP_PREFIX", false),
			Anonymize:   getEnvBoolOrDefault("SURVEY_ANONYMIZE", false),
			Overwrite:   getEnvBoolOrDefault("SURVEY_OVERWRITE", false),
			Color:       getEnvBoolOrDefault("SURVEY_COLOR", true),
		},
		Database: loadDatabaseConfig(),
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func validateConfig(config *Config) error {
	if config.Surveys.IDColumn == "" {
		return errors.ConfigInvalid("survey ID column is required")
	}
	if config.Surveys.ScoringFile == "" {
		return errors.ConfigInvalid("scoring file is required")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
