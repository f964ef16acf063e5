package analysis

import (
	"math"

	"anonsurvey/domain/survey"

	"github.com/montanaflynn/stats"
)

// Outcome marks whether a paired test could be computed for an entity.
type Outcome string

const (
	// OutcomeComputed: statistic, p-value and degrees of freedom are valid.
	OutcomeComputed Outcome = "computed"
	// OutcomeInsufficientData: fewer than 2 valid paired observations.
	OutcomeInsufficientData Outcome = "insufficient_data"
	// OutcomeZeroVariance: every paired difference is exactly zero, so
	// the statistic is undefined. Kept distinct from NaN propagation.
	OutcomeZeroVariance Outcome = "zero_variance"
)

// SideStats holds descriptive statistics for one side (pre or post) of an
// entity, computed over non-missing values only.
type SideStats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// PairedTestResult is the paired-difference test outcome for one entity:
// a single question (column axis) or a single respondent (row axis).
type PairedTestResult struct {
	Key       string    `json:"key"`
	Outcome   Outcome   `json:"outcome"`
	Statistic float64   `json:"statistic"`
	PValue    float64   `json:"p_value"`
	DF        int       `json:"df"`
	NPairs    int       `json:"n_pairs"`
	MeanDiff  float64   `json:"mean_diff"`
	Pre       SideStats `json:"pre"`
	Post      SideStats `json:"post"`
}

// Engine computes paired comparisons over an aligned survey pair.
type Engine struct {
	dist *StatisticalDistributions
}

// NewEngine creates a new paired statistics engine
func NewEngine() *Engine {
	return &Engine{dist: NewDistributions()}
}

// TestByQuestion runs the paired test for every aligned question, pairing
// each respondent's pre and post answers for that question.
func (e *Engine) TestByQuestion(a *survey.AlignedPair) map[string]PairedTestResult {
	rows, cols := a.Shape()
	results := make(map[string]PairedTestResult, cols)
	for j := 0; j < cols; j++ {
		pre := make([]survey.Cell, rows)
		post := make([]survey.Cell, rows)
		for i := 0; i < rows; i++ {
			pre[i] = a.Pre[i][j]
			post[i] = a.Post[i][j]
		}
		results[a.Questions[j]] = e.pairedTest(a.Questions[j], pre, post)
	}
	return results
}

// TestByStudent runs the paired test for every aligned respondent, pairing
// that respondent's pre and post answers across all questions.
func (e *Engine) TestByStudent(a *survey.AlignedPair) map[string]PairedTestResult {
	rows, _ := a.Shape()
	results := make(map[string]PairedTestResult, rows)
	for i := 0; i < rows; i++ {
		results[a.Respondents[i]] = e.pairedTest(a.Respondents[i], a.Pre[i], a.Post[i])
	}
	return results
}

// pairedTest computes the paired-difference t-test over two position-
// aligned optional vectors. Indexes where either side is missing are
// dropped (pairwise deletion); descriptive stats per side still use every
// non-missing value on that side.
func (e *Engine) pairedTest(key string, pre, post []survey.Cell) PairedTestResult {
	result := PairedTestResult{
		Key:  key,
		Pre:  describe(pre),
		Post: describe(post),
	}

	var diffs []float64
	for i := range pre {
		if pre[i].Valid && post[i].Valid {
			diffs = append(diffs, post[i].Score-pre[i].Score)
		}
	}
	result.NPairs = len(diffs)

	if len(diffs) < 2 {
		result.Outcome = OutcomeInsufficientData
		return result
	}

	n := float64(len(diffs))
	mean, _ := stats.Mean(diffs)
	sd, _ := stats.StandardDeviationSample(diffs)
	result.MeanDiff = mean
	result.DF = len(diffs) - 1

	if sd == 0 {
		result.Outcome = OutcomeZeroVariance
		return result
	}

	result.Statistic = mean / (sd / math.Sqrt(n))
	result.PValue = e.dist.TTestPValue(result.Statistic, result.DF)
	result.Outcome = OutcomeComputed
	return result
}

// describe computes one side's descriptive stats over non-missing values.
func describe(cells []survey.Cell) SideStats {
	var values []float64
	for _, c := range cells {
		if c.Valid {
			values = append(values, c.Score)
		}
	}
	side := SideStats{N: len(values)}
	if len(values) == 0 {
		return side
	}
	side.Mean, _ = stats.Mean(values)
	if len(values) > 1 {
		side.StdDev, _ = stats.StandardDeviationSample(values)
	}
	return side
}
