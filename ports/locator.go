package ports

// SurveyPair is one matched pre/post survey file pair discovered by
// naming convention. Post may be empty when missing posts are allowed.
type SurveyPair struct {
	Pre  string
	Post string
}

// HasPost reports whether the pair carries a post-survey file.
func (p SurveyPair) HasPost() bool { return p.Post != "" }

// SurveyLocator discovers matched pre/post survey files in a folder.
type SurveyLocator interface {
	FindPairs(folder string, allowMissingPost bool) ([]SurveyPair, error)
}
