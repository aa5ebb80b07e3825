package model

import "strings"

// Status is a provider's evaluation of a single claim
type Status string

const (
	StatusSupported Status = "Supported" // Claim backed by the reported evidence
	StatusContested Status = "Contested" // Evidence exists but is partial or disputed
	StatusRejected  Status = "Rejected"  // No credible support reported
)

// Priority orders statuses for report sorting (Supported first)
func (s Status) Priority() int {
	switch s {
	case StatusSupported:
		return 0
	case StatusContested:
		return 1
	default:
		return 2
	}
}

// ParseStatus normalizes a provider-reported status string.
// Unrecognized values collapse to Rejected rather than erroring:
// provider output is untrusted and the merge must never fail on it.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "supported":
		return StatusSupported
	case "contested":
		return StatusContested
	default:
		return StatusRejected
	}
}

// Finding is a single claim evaluation as reported by one provider,
// before merging
type Finding struct {
	Claim    string     `json:"claim"`
	Status   Status     `json:"status"`
	Evidence []Evidence `json:"evidence"`
	Notes    string     `json:"notes,omitempty"`
}

// MergedFinding is the consolidated result for one claim after
// combining all providers' reports. Status is recomputed from the
// union of reported statuses and the deduplicated evidence tiers.
type MergedFinding struct {
	Claim    string     `json:"claim"`
	Status   Status     `json:"status"`
	Evidence []Evidence `json:"evidence"`
}

// ProviderResult is the structured output of one model provider
type ProviderResult struct {
	CaseID        string             `json:"case_id,omitempty"`
	Findings      []Finding          `json:"findings"`
	Scores        map[string]float64 `json:"scores,omitempty"`
	KnownUnknowns []string           `json:"known_unknowns,omitempty"`
	Audit         []string           `json:"audit,omitempty"`
}
