package ports

import (
	"anonsurvey/domain/survey"
)

// TableSource produces a RawSurveyTable from a spreadsheet-like source.
// Implementations preserve first-seen row and column order; the core
// re-sorts during alignment.
type TableSource interface {
	ReadSurvey(path string) (survey.RawTable, error)
}

// ScoringSource loads the category-to-score table the pipeline recodes with.
type ScoringSource interface {
	ReadScoring(path string) (*survey.ScoringTable, error)
}
