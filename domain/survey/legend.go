package survey

import "fmt"

// Legend maps shorthand labels used in output tables back to their full
// meaning: question shorthands to original question text, and respondent
// hashes to sequential human-readable pseudonyms. The legend never holds
// a raw identifier; only the hash-to-pseudonym relation.
type Legend struct {
	Questions map[string]string
	Students  map[string]string
}

// QuestionShorthand returns the stable shorthand for the question at
// aligned column position i (zero-based): "Q01", "Q02", ...
func QuestionShorthand(i int) string {
	return fmt.Sprintf("Q%02d", i+1)
}

// StudentPseudonym returns the pseudonym for the respondent at aligned
// row position i (zero-based): "student_01", "student_02", ...
func StudentPseudonym(i int) string {
	return fmt.Sprintf("student_%02d", i+1)
}

// BuildLegend produces the legend for an aligned pair. Question entries
// are always produced; respondent pseudonyms only when anonymize is
// requested, assigned in the canonical sorted order established by the
// aligner so the same respondent maps to the same pseudonym within a run.
func BuildLegend(a *AlignedPair, anonymize bool) Legend {
	legend := Legend{Questions: make(map[string]string, len(a.Questions))}
	for i, q := range a.Questions {
		text := a.QuestionText[q]
		if text == "" {
			text = q
		}
		legend.Questions[QuestionShorthand(i)] = text
	}
	if anonymize {
		legend.Students = make(map[string]string, len(a.Respondents))
		for i, hash := range a.Respondents {
			legend.Students[hash] = StudentPseudonym(i)
		}
	}
	return legend
}
