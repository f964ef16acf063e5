package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anonsurvey/app"
	"anonsurvey/internal/testkit"
)

func resultFixture(t *testing.T) app.AnalysisResult {
	t.Helper()
	_, result, err := app.NewPipeline().Run(
		testkit.PreSurvey(), testkit.PostSurvey(), testkit.Scoring(),
		app.Options{Anonymize: true},
	)
	require.NoError(t, err)
	return *result
}

func TestBuildReport(t *testing.T) {
	result := resultFixture(t)
	report := BuildReport(result)

	assert.Contains(t, report, "## Paired t-test by question")
	assert.Contains(t, report, "## Paired t-test by student")
	assert.Contains(t, report, "## Legend")
	assert.Contains(t, report, testkit.QTrust)
	assert.Contains(t, report, "student_01")

	// Pseudonyms replace hashes in the student table
	for hash := range result.Legend.Students {
		lines := strings.Split(report, "\n")
		for _, line := range lines {
			if strings.HasPrefix(line, "| "+hash) {
				t.Errorf("raw hash %s leaked into report table", hash)
			}
		}
	}
}

func TestRenderReportHTML(t *testing.T) {
	html := string(RenderReportHTML(BuildReport(resultFixture(t))))

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "student_01")
}
