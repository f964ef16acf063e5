package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SURVEY_FOLDER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Surveys.Folder)
	assert.Equal(t, "Your student number", cfg.Surveys.IDColumn)
	assert.Equal(t, "Scoring.xlsx", cfg.Surveys.ScoringFile)
	assert.False(t, cfg.Surveys.StripPrefix)
	assert.False(t, cfg.Surveys.Anonymize)
	assert.True(t, cfg.Surveys.Color)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SURVEY_FOLDER", "/data/courses")
	t.Setenv("SURVEY_STRIP_PREFIX", "true")
	t.Setenv("SURVEY_ANONYMIZE", "1")
	t.Setenv("DATABASE_URL", "postgres://localhost/surveys")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/courses", cfg.Surveys.Folder)
	assert.True(t, cfg.Surveys.StripPrefix)
	assert.True(t, cfg.Surveys.Anonymize)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://localhost/surveys", cfg.Database.URL)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoad_InvalidBoolFallsBack(t *testing.T) {
	t.Setenv("SURVEY_COLOR", "sometimes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Surveys.Color)
}
