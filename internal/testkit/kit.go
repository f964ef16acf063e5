package testkit

import (
	"anonsurvey/domain/survey"
)

// Testkit provides shared fixtures: the five-point scoring table and
// small pre/post surveys shaped like real classroom exports.

// Scoring returns the standard five-point table. Full labels and their
// abbreviations resolve to the same score.
func Scoring() *survey.ScoringTable {
	table := survey.NewScoringTable()
	labels := map[string]float64{
		"Strongly agree (SA)":    5,
		"Agree (A)":              4,
		"Neutral (N)":            3,
		"Disagree (D)":           2,
		"Strongly Disagree (SD)": 1,
	}
	for label, score := range labels {
		if err := table.AddWithAbbreviation(label, score); err != nil {
			panic(err)
		}
	}
	return table
}

// Questions used by the fixture surveys.
const (
	QTrust    = "I trust others in this course"
	QIsolated = "I feel isolated in this course"
	QFeedback = "I feel that I receive timely feedback"
)

// PreSurvey returns a raw pre-survey with three respondents.
func PreSurvey() survey.RawTable {
	t := survey.NewRawTable([]string{QTrust, QIsolated, QFeedback})
	t.AddRow("s001", []string{"A", "D", "N"})
	t.AddRow("s002", []string{"SA", "SD", "A"})
	t.AddRow("s003", []string{"N", "N", "D"})
	return t
}

// PostSurvey returns a raw post-survey overlapping PreSurvey on s001 and
// s002, with an extra respondent and an extra question.
func PostSurvey() survey.RawTable {
	t := survey.NewRawTable([]string{QTrust, QIsolated, QFeedback, "I feel that this course is like a family"})
	t.AddRow("s001", []string{"SA", "SD", "A", "A"})
	t.AddRow("s002", []string{"SA", "D", "SA", "N"})
	t.AddRow("s004", []string{"A", "N", "N", "D"})
	return t
}
