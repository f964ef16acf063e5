package survey

import (
	"sort"
	"strings"

	"anonsurvey/domain/core"
)

// NormalizeQuestion folds question text for cross-survey comparison:
// trimmed and internal whitespace collapsed, case preserved. This
// tolerates incidental formatting drift between the two files without
// merging genuinely different questions.
func NormalizeQuestion(q string) string {
	return labelSpace.ReplaceAllString(strings.TrimSpace(q), " ")
}

// Align restricts two numeric surveys to their common respondents (exact
// key match) and common questions (normalized-text match), both sorted
// ascending. The resulting matrices have identical shape and identity by
// position. An empty intersection on either axis is a structural error;
// no zero-sized pair is ever handed downstream silently.
func Align(pre, post NumericTable) (*AlignedPair, error) {
	respondents := intersectKeys(pre.Order, post.Order)
	if len(respondents) == 0 {
		return nil, core.NewStructuralError("align", core.ErrNoCommonRespondents)
	}

	preIdx := questionIndex(pre.Questions)
	postIdx := questionIndex(post.Questions)
	questionText := make(map[string]string)
	var questions []string
	for norm := range preIdx {
		if _, ok := postIdx[norm]; ok {
			questions = append(questions, norm)
			questionText[norm] = pre.Questions[preIdx[norm]]
		}
	}
	if len(questions) == 0 {
		return nil, core.NewStructuralError("align", core.ErrNoCommonQuestions)
	}
	sort.Strings(questions)

	aligned := &AlignedPair{
		Respondents:  respondents,
		Questions:    questions,
		QuestionText: questionText,
		Pre:          project(pre, respondents, questions, preIdx),
		Post:         project(post, respondents, questions, postIdx),
	}
	return aligned, nil
}

// intersectKeys returns the sorted intersection of two row-key slices.
func intersectKeys(a, b []string) []string {
	inA := make(map[string]struct{}, len(a))
	for _, k := range a {
		inA[k] = struct{}{}
	}
	var common []string
	for _, k := range b {
		if _, ok := inA[k]; ok {
			common = append(common, k)
			delete(inA, k)
		}
	}
	sort.Strings(common)
	return common
}

// questionIndex maps normalized question text to its column position.
// On duplicate normalized forms within one table the first column wins.
func questionIndex(questions []string) map[string]int {
	idx := make(map[string]int, len(questions))
	for i, q := range questions {
		norm := NormalizeQuestion(q)
		if _, dup := idx[norm]; !dup {
			idx[norm] = i
		}
	}
	return idx
}

// project extracts the aligned matrix for one side in canonical order.
func project(t NumericTable, respondents, questions []string, colIdx map[string]int) [][]Cell {
	matrix := make([][]Cell, len(respondents))
	for i, key := range respondents {
		src := t.Cells[key]
		row := make([]Cell, len(questions))
		for j, q := range questions {
			if c := colIdx[q]; c < len(src) {
				row[j] = src[c]
			}
		}
		matrix[i] = row
	}
	return matrix
}
