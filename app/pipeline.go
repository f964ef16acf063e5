package app

import (
	"log"

	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal/analysis"
)

// Options is the immutable configuration recognized by the pipeline
// entry points. Passed explicitly, never ambient.
type Options struct {
	// StripPrefix removes a leading non-numeric character from raw
	// identifiers before hashing, so "s123" and "123" match.
	StripPrefix bool
	// Anonymize emits sequential pseudonyms instead of hashes in
	// presented output.
	Anonymize bool
}

// CleanResult is the output of the cleaning phase: both surveys recoded
// to numeric scores and rekeyed by anonymized identifier, plus every
// recode diagnostic accumulated along the way.
type CleanResult struct {
	Pre         survey.NumericTable
	Post        survey.NumericTable
	Diagnostics []survey.RecodeDiagnostic
}

// AnalysisResult is the output of the analysis phase, owned by the
// caller once returned.
type AnalysisResult struct {
	RunID      core.RunID                           `json:"run_id"`
	ByQuestion map[string]analysis.PairedTestResult `json:"by_question"`
	ByStudent  map[string]analysis.PairedTestResult `json:"by_student"`
	Legend     survey.Legend                        `json:"legend"`
	Aligned    *survey.AlignedPair                  `json:"-"`
}

// Pipeline wires the cleaning and analysis phases. It holds no mutable
// state across invocations; concurrent runs over different survey sets
// need no coordination.
type Pipeline struct {
	engine *analysis.Engine
}

// NewPipeline creates a new survey pipeline
func NewPipeline() *Pipeline {
	return &Pipeline{engine: analysis.NewEngine()}
}

// Clean recodes both raw surveys against the scoring table and rekeys
// their rows by anonymized hash. An empty scoring table is a
// configuration error; unmapped labels degrade to missing cells with
// diagnostics, never silently.
func (p *Pipeline) Clean(rawPre, rawPost survey.RawTable, scoring *survey.ScoringTable, opts Options) (CleanResult, error) {
	if scoring == nil || scoring.Len() == 0 {
		return CleanResult{}, core.ErrScoringEmpty
	}

	numPre, preDiags := survey.Recode(rawPre, scoring)
	numPost, postDiags := survey.Recode(rawPost, scoring)
	diags := append(preDiags, postDiags...)
	if len(diags) > 0 {
		log.Printf("[Pipeline] %d unmapped answer labels treated as missing", len(diags))
	}

	anonPre, err := survey.AnonymizeRows(numPre, opts.StripPrefix)
	if err != nil {
		return CleanResult{}, err
	}
	anonPost, err := survey.AnonymizeRows(numPost, opts.StripPrefix)
	if err != nil {
		return CleanResult{}, err
	}

	return CleanResult{Pre: anonPre, Post: anonPost, Diagnostics: diags}, nil
}

// Align restricts the cleaned surveys to their common respondents and
// questions. Empty intersections surface as structural errors; the
// cleaned data stays usable regardless.
func (p *Pipeline) Align(clean CleanResult) (*survey.AlignedPair, error) {
	return survey.Align(clean.Pre, clean.Post)
}

// Analyze computes the paired comparisons along both axes of an aligned
// pair and builds the presentation legend.
func (p *Pipeline) Analyze(aligned *survey.AlignedPair, opts Options) (AnalysisResult, error) {
	rows, cols := aligned.Shape()
	log.Printf("[Pipeline] Analyzing %d respondents x %d questions", rows, cols)

	return AnalysisResult{
		RunID:      core.NewRunID(),
		ByQuestion: p.engine.TestByQuestion(aligned),
		ByStudent:  p.engine.TestByStudent(aligned),
		Legend:     survey.BuildLegend(aligned, opts.Anonymize),
		Aligned:    aligned,
	}, nil
}

// Run executes cleaning, alignment and analysis in order. A structural
// alignment failure aborts only the analysis phase: the clean result is
// returned intact alongside the error so the caller can still persist
// the cleaned data.
func (p *Pipeline) Run(rawPre, rawPost survey.RawTable, scoring *survey.ScoringTable, opts Options) (CleanResult, *AnalysisResult, error) {
	clean, err := p.Clean(rawPre, rawPost, scoring, opts)
	if err != nil {
		return CleanResult{}, nil, err
	}

	aligned, err := p.Align(clean)
	if err != nil {
		return clean, nil, err
	}

	result, err := p.Analyze(aligned, opts)
	if err != nil {
		return clean, nil, err
	}
	return clean, &result, nil
}
