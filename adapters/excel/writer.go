package excel

import (
	"fmt"
	"log"
	"sort"

	"anonsurvey/app"
	"anonsurvey/domain/survey"
	"anonsurvey/internal/analysis"
	"anonsurvey/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	SheetCleanPre   = "Clean pre-survey"
	SheetCleanPost  = "Clean post-survey"
	SheetByQuestion = "By question"
	SheetByStudent  = "By student"
	SheetLegend     = "Legend"

	// AnonymousID heads the identifier column in cleaned output.
	AnonymousID = "student_anon"

	significanceLevel = 0.05
)

// ResultWriter writes cleaned and analysis workbooks with excelize.
type ResultWriter struct {
	color bool
}

// NewResultWriter creates a writer; color controls whether significant
// p-values get a cell fill.
func NewResultWriter(color bool) *ResultWriter {
	return &ResultWriter{color: color}
}

// WriteCleaned writes both recoded, anonymized surveys to one workbook.
func (w *ResultWriter) WriteCleaned(path string, clean app.CleanResult) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetCleanPre)
	if _, err := f.NewSheet(SheetCleanPost); err != nil {
		return errors.Wrap(err, "failed to create post-survey sheet")
	}

	writeNumericSheet(f, SheetCleanPre, clean.Pre)
	writeNumericSheet(f, SheetCleanPost, clean.Post)

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save cleaned workbook %s", path)
	}
	log.Printf("[ResultWriter] wrote cleaned workbook %s", path)
	return nil
}

// WriteAnalysis writes per-question results, per-student results and the
// legend to one workbook.
func (w *ResultWriter) WriteAnalysis(path string, result app.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetByQuestion)
	for _, sheet := range []string{SheetByStudent, SheetLegend} {
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "failed to create sheet %s", sheet)
		}
	}

	var sigStyle int
	if w.color {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		})
		if err != nil {
			return errors.Wrap(err, "failed to create significance style")
		}
		sigStyle = style
	}

	questionRows := make([]resultRow, 0, len(result.Aligned.Questions))
	for i, q := range result.Aligned.Questions {
		questionRows = append(questionRows, resultRow{
			label:  survey.QuestionShorthand(i),
			result: result.ByQuestion[q],
		})
	}
	w.writeResultSheet(f, SheetByQuestion, "Question", questionRows, sigStyle)

	studentRows := make([]resultRow, 0, len(result.Aligned.Respondents))
	for _, hash := range result.Aligned.Respondents {
		label := hash
		if pseudonym, ok := result.Legend.Students[hash]; ok {
			label = pseudonym
		}
		studentRows = append(studentRows, resultRow{label: label, result: result.ByStudent[hash]})
	}
	w.writeResultSheet(f, SheetByStudent, "Student", studentRows, sigStyle)

	writeLegendSheet(f, result)

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save analysis workbook %s", path)
	}
	log.Printf("[ResultWriter] wrote analysis workbook %s", path)
	return nil
}

type resultRow struct {
	label  string
	result analysis.PairedTestResult
}

var resultHeader = []string{
	"", "Pre mean", "Pre stddev", "Post mean", "Post stddev",
	"Mean diff", "N pairs", "DF", "T statistic", "P value", "Outcome",
}

func (w *ResultWriter) writeResultSheet(f *excelize.File, sheet, entity string, rows []resultRow, sigStyle int) {
	header := append([]string{}, resultHeader...)
	header[0] = entity
	for c, name := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	for r, row := range rows {
		res := row.result
		values := []interface{}{
			row.label,
			res.Pre.Mean, res.Pre.StdDev, res.Post.Mean, res.Post.StdDev,
			res.MeanDiff, res.NPairs, res.DF,
		}
		if res.Outcome == analysis.OutcomeComputed {
			values = append(values, res.Statistic, res.PValue)
		} else {
			values = append(values, "", "")
		}
		values = append(values, string(res.Outcome))

		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}

		if w.color && res.Outcome == analysis.OutcomeComputed && res.PValue < significanceLevel {
			cell, _ := excelize.CoordinatesToCellName(10, r+2)
			f.SetCellStyle(sheet, cell, cell, sigStyle)
		}
	}
}

// writeNumericSheet writes one cleaned survey: the anonymized identifier
// column followed by every question, missing cells left empty.
func writeNumericSheet(f *excelize.File, sheet string, table survey.NumericTable) {
	f.SetCellValue(sheet, "A1", AnonymousID)
	for c, q := range table.Questions {
		cell, _ := excelize.CoordinatesToCellName(c+2, 1)
		f.SetCellValue(sheet, cell, q)
	}

	for r, key := range table.Order {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		f.SetCellValue(sheet, cell, key)
		for c, score := range table.Cells[key] {
			if !score.Valid {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+2, r+2)
			f.SetCellValue(sheet, cell, score.Score)
		}
	}
}

func writeLegendSheet(f *excelize.File, result app.AnalysisResult) {
	f.SetCellValue(SheetLegend, "A1", "ID")
	f.SetCellValue(SheetLegend, "B1", "Meaning")

	keys := make([]string, 0, len(result.Legend.Questions)+len(result.Legend.Students))
	meanings := make(map[string]string)
	for k, v := range result.Legend.Questions {
		keys = append(keys, k)
		meanings[k] = v
	}
	for hash, pseudonym := range result.Legend.Students {
		keys = append(keys, pseudonym)
		meanings[pseudonym] = hash
	}
	sort.Strings(keys)

	for i, k := range keys {
		f.SetCellValue(SheetLegend, fmt.Sprintf("A%d", i+2), k)
		f.SetCellValue(SheetLegend, fmt.Sprintf("B%d", i+2), meanings[k])
	}
}
