package survey

// Cell is one optional numeric observation. Missing cells stay missing
// through recoding, alignment and statistics; they are never defaulted.
type Cell struct {
	Score float64
	Valid bool
}

// Some returns a present cell.
func Some(score float64) Cell { return Cell{Score: score, Valid: true} }

// None returns a missing cell.
func None() Cell { return Cell{} }

// RawTable is a survey as parsed by an I/O adapter: rows keyed by raw
// student identifier, columns keyed by original question text, cells
// holding categorical labels or the empty string for missing answers.
// Row keys are unique within a table; first-seen order is preserved
// until the aligner re-sorts.
type RawTable struct {
	Questions []string
	Order     []string
	Cells     map[string][]string
}

// NewRawTable creates an empty raw survey over the given question columns.
func NewRawTable(questions []string) RawTable {
	return RawTable{
		Questions: questions,
		Cells:     make(map[string][]string),
	}
}

// AddRow appends one respondent's answers. Duplicate row keys keep the
// first record, matching how duplicate student submissions are handled.
// Returns false when the key was already present.
func (t *RawTable) AddRow(key string, answers []string) bool {
	if _, dup := t.Cells[key]; dup {
		return false
	}
	row := make([]string, len(t.Questions))
	copy(row, answers)
	t.Order = append(t.Order, key)
	t.Cells[key] = row
	return true
}

// RowCount returns the number of respondents.
func (t RawTable) RowCount() int { return len(t.Order) }

// NumericTable has the same shape and keys as its source RawTable, with
// cells recoded to optional numeric scores.
type NumericTable struct {
	Questions []string
	Order     []string
	Cells     map[string][]Cell
}

// NewNumericTable creates an empty numeric survey over the given questions.
func NewNumericTable(questions []string) NumericTable {
	return NumericTable{
		Questions: questions,
		Cells:     make(map[string][]Cell),
	}
}

// AddRow appends one recoded respondent row, keeping the first record on
// duplicate keys.
func (t *NumericTable) AddRow(key string, cells []Cell) bool {
	if _, dup := t.Cells[key]; dup {
		return false
	}
	row := make([]Cell, len(t.Questions))
	copy(row, cells)
	t.Order = append(t.Order, key)
	t.Cells[key] = row
	return true
}

// RowCount returns the number of respondents.
func (t NumericTable) RowCount() int { return len(t.Order) }

// AlignedPair holds the pre- and post-survey matrices restricted to their
// common respondents and common questions, both sorted ascending so that
// row i and column j of Pre and Post always refer to the same respondent
// and the same question.
type AlignedPair struct {
	Respondents []string
	Questions   []string

	// QuestionText maps each normalized question key back to its
	// original text as it appeared in the pre-survey.
	QuestionText map[string]string

	Pre  [][]Cell
	Post [][]Cell
}

// Shape returns rows x columns of the aligned matrices.
func (a *AlignedPair) Shape() (rows, cols int) {
	return len(a.Respondents), len(a.Questions)
}
