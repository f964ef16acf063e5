package survey

import (
	"anonsurvey/domain/core"
)

// AnonymizeRows rekeys a numeric survey by the stable hash of each raw
// student identifier, removing the PII link. When two raw identifiers
// normalize to the same hash (e.g. "s123" and "123" with prefix
// stripping) the first row wins, mirroring duplicate-record handling.
// An empty identifier is an input error, not a degenerate hash.
func AnonymizeRows(t NumericTable, stripPrefix bool) (NumericTable, error) {
	out := NewNumericTable(t.Questions)
	for _, key := range t.Order {
		hashed, err := core.AnonymizeID(key, stripPrefix)
		if err != nil {
			return NumericTable{}, err
		}
		out.AddRow(hashed.String(), t.Cells[key])
	}
	return out, nil
}
