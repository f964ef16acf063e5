package survey

import (
	"regexp"
	"strings"

	"anonsurvey/domain/core"
)

var labelSpace = regexp.MustCompile(`\s+`)

// normalizeLabel folds a categorical label for lookup: trimmed, internal
// whitespace collapsed, lowercased.
func normalizeLabel(label string) string {
	return strings.ToLower(labelSpace.ReplaceAllString(strings.TrimSpace(label), " "))
}

// ScoringTable maps categorical answer labels to numeric scores. Lookup is
// case-insensitive and whitespace-tolerant; full names and abbreviations
// resolve to the same score when both are configured.
type ScoringTable struct {
	scores map[string]float64
}

// NewScoringTable creates an empty scoring table.
func NewScoringTable() *ScoringTable {
	return &ScoringTable{scores: make(map[string]float64)}
}

// Add registers a label with its score. Registering the same label twice
// with a different score is a conflicting configuration and is rejected;
// re-registering with the identical score is a no-op.
func (t *ScoringTable) Add(label string, score float64) error {
	key := normalizeLabel(label)
	if key == "" {
		return core.ErrScoringConflict
	}
	if prev, ok := t.scores[key]; ok && prev != score {
		return core.ErrScoringConflict
	}
	t.scores[key] = score
	return nil
}

// Score resolves a cell label to its numeric score. Unrecognized labels
// return ok=false and degrade to missing data rather than aborting.
func (t *ScoringTable) Score(label string) (float64, bool) {
	score, ok := t.scores[normalizeLabel(label)]
	return score, ok
}

// Len returns the number of registered labels.
func (t *ScoringTable) Len() int { return len(t.scores) }

var abbrevSuffix = regexp.MustCompile(`^(.*\S)\s*\(([A-Za-z]{1,3})\)$`)

// AddWithAbbreviation registers a label and, when the label carries a
// parenthesized abbreviation such as "Strongly agree (SA)", the bare
// abbreviation as an alias of the same score.
func (t *ScoringTable) AddWithAbbreviation(label string, score float64) error {
	if err := t.Add(label, score); err != nil {
		return err
	}
	if m := abbrevSuffix.FindStringSubmatch(strings.TrimSpace(label)); m != nil {
		if err := t.Add(m[1], score); err != nil {
			return err
		}
		return t.Add(m[2], score)
	}
	return nil
}
