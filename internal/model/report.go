package model

// Verdict labels returned in reports. These exact strings are part of
// the response contract.
const (
	VerdictSupported    = "Supported claims with safety basis"
	VerdictInconclusive = "Inconclusive"
	VerdictMixed        = "Mixed evidence; further review needed"
)

// Report is the complete claimlens response for one post check
type Report struct {
	CaseID        string          `json:"case_id"`
	Verdict       string          `json:"verdict"`
	Confidence    float64         `json:"confidence"` // Always in [0, 0.95]
	Findings      []MergedFinding `json:"findings"`   // Sorted: status priority asc, evidence count desc
	TopSources    []string        `json:"top_sources"`
	KnownUnknowns []string        `json:"known_unknowns"`
	TweetText     string          `json:"tweet_text"`
	ReportURL     string          `json:"report_url"`
}
