package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindPairs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Pre_survey1.xlsx"))
	touch(t, filepath.Join(dir, "Pre_survey2.xlsx"))
	touch(t, filepath.Join(dir, "Post_survey2.xlsx"))
	touch(t, filepath.Join(dir, "notes.xlsx"))

	pairs, err := NewFinder().FindPairs(dir, false)
	require.NoError(t, err)

	require.Len(t, pairs, 1)
	assert.Equal(t, filepath.Join(dir, "Pre_survey2.xlsx"), pairs[0].Pre)
	assert.Equal(t, filepath.Join(dir, "Post_survey2.xlsx"), pairs[0].Post)
	assert.True(t, pairs[0].HasPost())
}

func TestFindPairs_AllowMissingPost(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Pre_survey1.xlsx"))
	touch(t, filepath.Join(dir, "Pre_survey2.xlsx"))
	touch(t, filepath.Join(dir, "Post_survey2.xlsx"))

	pairs, err := NewFinder().FindPairs(dir, true)
	require.NoError(t, err)

	require.Len(t, pairs, 2)
	assert.False(t, pairs[0].HasPost())
	assert.True(t, pairs[1].HasPost())
}

func TestFindPairs_EmptyFolder(t *testing.T) {
	pairs, err := NewFinder().FindPairs(t.TempDir(), false)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestDataName(t *testing.T) {
	tests := []struct {
		filename string
		sequence int
		want     string
	}{
		{"Pre_data_survey_(1-89).xlsx", 1, "data_survey_(1-89)"},
		{"Pre_data_survey.xlsx", 2, "data_survey_02"},
		{"Pre_data_survey_(1-89)_(2-90).xlsx", 3, "data_survey_(1-89)"},
		{"Pre_(1-89)_suffix.xlsx", 4, "data_survey_(1-89)"},
		{"Pre_plain.xlsx", 6, "data_survey_06"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DataName(tt.filename, tt.sequence), tt.filename)
	}
}

func TestOutputPathsAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	cleaned, analysis := OutputPaths(dir, "data_survey_01")
	assert.Equal(t, filepath.Join(dir, "cleaned_data_survey_01.xlsx"), cleaned)
	assert.Equal(t, filepath.Join(dir, "analysis_data_survey_01.xlsx"), analysis)

	touch(t, cleaned)
	touch(t, analysis)
	touch(t, filepath.Join(dir, "Pre_survey.xlsx"))
	assert.True(t, Exists(cleaned))

	require.NoError(t, RemovePreviousResults(dir))
	assert.False(t, Exists(cleaned))
	assert.False(t, Exists(analysis))
	// Survey inputs are untouched
	assert.True(t, Exists(filepath.Join(dir, "Pre_survey.xlsx")))
}
