package ports

import (
	"anonsurvey/app"
)

// ResultWriter persists pipeline outputs to spreadsheet workbooks. The
// core never writes files itself; formatting, sheet layout and cell
// coloring are adapter concerns.
type ResultWriter interface {
	WriteCleaned(path string, clean app.CleanResult) error
	WriteAnalysis(path string, result app.AnalysisResult) error
}
