package excel

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DroppedColumns are PII and bookkeeping columns removed from survey
// tables at the boundary; they never reach the core.
var DroppedColumns = []string{
	"ID", "Start time", "Completion time", "Email", "Name", "Last modified time",
}

// SurveyReader reads survey workbooks into raw keyed tables.
type SurveyReader struct {
	idColumn string
}

// NewSurveyReader creates a reader keyed on the given identifier column.
func NewSurveyReader(idColumn string) *SurveyReader {
	return &SurveyReader{idColumn: idColumn}
}

// ReadSurvey reads the first sheet of a survey workbook. Rows with an
// empty identifier are dropped; duplicate identifiers keep the first
// record; PII columns are removed. First-seen row and column order is
// preserved.
func (r *SurveyReader) ReadSurvey(path string) (survey.RawTable, error) {
	rows, err := readSheet(path, "")
	if err != nil {
		return survey.RawTable{}, err
	}
	if len(rows) < 2 {
		return survey.RawTable{}, errors.New(errors.CodeInput,
			fmt.Sprintf("survey %s must have a header row and at least one data row", path))
	}

	header := rows[0]
	idIdx := -1
	dropped := make(map[int]bool)
	var questions []string
	var questionIdx []int
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		switch {
		case name == r.idColumn:
			idIdx = i
		case isDroppedColumn(name) || name == "":
			dropped[i] = true
		default:
			questions = append(questions, name)
			questionIdx = append(questionIdx, i)
		}
	}
	if idIdx < 0 {
		return survey.RawTable{}, errors.New(errors.CodeInput,
			fmt.Sprintf("survey %s has no %q column", path, r.idColumn))
	}

	table := survey.NewRawTable(questions)
	skipped := 0
	for _, row := range rows[1:] {
		id := cellAt(row, idIdx)
		if id == "" {
			skipped++
			continue
		}
		answers := make([]string, len(questionIdx))
		for j, col := range questionIdx {
			answers[j] = cellAt(row, col)
		}
		if !table.AddRow(id, answers) {
			skipped++
		}
	}

	log.Printf("[SurveyReader] %s: %d respondents, %d questions, %d rows dropped",
		path, table.RowCount(), len(questions), skipped)
	return table, nil
}

// ScoringReader loads the category scoring sheet: one label per row with
// its numeric score. Labels carrying a parenthesized abbreviation also
// register the abbreviation as an alias.
type ScoringReader struct {
	sheet string
}

// NewScoringReader creates a scoring reader for the named sheet; an empty
// name falls back to the workbook's first sheet.
func NewScoringReader(sheet string) *ScoringReader {
	return &ScoringReader{sheet: sheet}
}

// ReadScoring parses the scoring workbook into a ScoringTable. A missing
// or unreadable file is a structural error; a malformed or conflicting
// entry is an input error.
func (r *ScoringReader) ReadScoring(path string) (*survey.ScoringTable, error) {
	rows, err := readSheet(path, r.sheet)
	if err != nil && r.sheet != "" {
		// Workbooks without a named scoring sheet keep it on the first one.
		rows, err = readSheet(path, "")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrScoringUnavailable, err)
	}

	table := survey.NewScoringTable()
	for i, row := range rows {
		label := cellAt(row, 0)
		rawScore := cellAt(row, 1)
		if label == "" && rawScore == "" {
			continue
		}
		score, err := strconv.ParseFloat(rawScore, 64)
		if err != nil {
			if i == 0 {
				// header row
				continue
			}
			return nil, errors.New(errors.CodeInput,
				fmt.Sprintf("scoring row %d: %q is not a numeric score", i+1, rawScore))
		}
		if err := table.AddWithAbbreviation(label, score); err != nil {
			return nil, errors.Wrapf(err, "scoring row %d (%q)", i+1, label)
		}
	}
	if table.Len() == 0 {
		return nil, core.ErrScoringEmpty
	}

	log.Printf("[ScoringReader] %s: %d labels", path, table.Len())
	return table, nil
}

// readSheet returns the raw string rows of one sheet, defaulting to the
// workbook's first sheet when name is empty.
func readSheet(path, sheet string) ([][]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("workbook not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func isDroppedColumn(name string) bool {
	for _, col := range DroppedColumns {
		if strings.EqualFold(name, col) {
			return true
		}
	}
	return false
}
