package survey

// RecodeDiagnostic records one cell whose categorical label failed to
// resolve against the scoring table. The cell is treated as missing; the
// diagnostic is surfaced so the degradation is never silent.
type RecodeDiagnostic struct {
	Row      string
	Question string
	Value    string
}

// Recode applies the scoring table cell-by-cell, preserving row and column
// keys and order. Empty cells stay missing without a diagnostic; unmapped
// non-empty labels become missing and accumulate a diagnostic.
func Recode(t RawTable, scoring *ScoringTable) (NumericTable, []RecodeDiagnostic) {
	out := NewNumericTable(t.Questions)
	var diags []RecodeDiagnostic

	for _, key := range t.Order {
		raw := t.Cells[key]
		row := make([]Cell, len(t.Questions))
		for i := range t.Questions {
			var label string
			if i < len(raw) {
				label = raw[i]
			}
			if normalizeLabel(label) == "" {
				continue
			}
			score, ok := scoring.Score(label)
			if !ok {
				diags = append(diags, RecodeDiagnostic{
					Row:      key,
					Question: t.Questions[i],
					Value:    label,
				})
				continue
			}
			row[i] = Some(score)
		}
		out.AddRow(key, row)
	}

	return out, diags
}
