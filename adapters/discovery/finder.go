package discovery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"anonsurvey/ports"
)

const (
	stemPre  = "Pre"
	stemPost = "Post"

	// Output basenames for the two workbooks a run produces.
	CleanedBase  = "cleaned"
	AnalysisBase = "analysis"

	dataBasename = "data_survey"
)

// Finder locates matched pre/post survey workbooks by naming convention:
// pre-survey files start with "Pre", the matching post-survey file shares
// the remaining stem under "Post".
type Finder struct{}

// NewFinder creates a survey file finder.
func NewFinder() *Finder { return &Finder{} }

// FindPairs scans a folder for Pre*.xlsx files and pairs each with its
// Post counterpart. Pairs missing the post file are skipped unless
// allowMissingPost is set, in which case they carry an empty post path
// so the cleaning phase can still run.
func (f *Finder) FindPairs(folder string, allowMissingPost bool) ([]ports.SurveyPair, error) {
	pattern := filepath.Join(folder, stemPre+"*.xlsx")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", folder, err)
	}
	if len(files) == 0 {
		log.Printf("[Finder] no survey workbooks in %s", folder)
		return nil, nil
	}

	var pairs []ports.SurveyPair
	for _, pre := range files {
		base := filepath.Base(pre)
		post := filepath.Join(filepath.Dir(pre), stemPost+base[len(stemPre):])
		if _, err := os.Stat(post); err == nil {
			pairs = append(pairs, ports.SurveyPair{Pre: pre, Post: post})
		} else if allowMissingPost {
			pairs = append(pairs, ports.SurveyPair{Pre: pre})
		}
	}
	return pairs, nil
}

var rangeToken = regexp.MustCompile(`\(\d+-\d+\)`)

// DataName derives the output basename for one survey pair. When the
// pre-survey filename carries a parenthesized range token such as
// "(1-89)" that token is kept; otherwise the pair's sequence number
// disambiguates.
func DataName(preFile string, sequence int) string {
	name := filepath.Base(preFile)
	if token := rangeToken.FindString(name); token != "" {
		return fmt.Sprintf("%s_%s", dataBasename, token)
	}
	return fmt.Sprintf("%s_%02d", dataBasename, sequence)
}

// OutputPaths returns the cleaned and analysis workbook paths for one pair.
func OutputPaths(folder, dataName string) (cleaned, analysis string) {
	cleaned = filepath.Join(folder, fmt.Sprintf("%s_%s.xlsx", CleanedBase, dataName))
	analysis = filepath.Join(folder, fmt.Sprintf("%s_%s.xlsx", AnalysisBase, dataName))
	return cleaned, analysis
}

// RemovePreviousResults deletes earlier cleaned/analysis workbooks from a
// folder so a fresh run can overwrite them.
func RemovePreviousResults(folder string) error {
	for _, base := range []string{CleanedBase, AnalysisBase} {
		matches, err := filepath.Glob(filepath.Join(folder, base+"_*.xlsx"))
		if err != nil {
			return err
		}
		for _, m := range matches {
			if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove %s: %w", m, err)
			}
			log.Printf("[Finder] removed previous result %s", m)
		}
	}
	return nil
}

// Exists reports whether a path already holds a file.
func Exists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
