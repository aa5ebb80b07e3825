package merge

import (
	"math"

	"claimlens/internal/model"
)

// Verdict derives the overall verdict label from a merged finding list.
// Rules are evaluated in order, first match wins:
// any Supported finding wins outright; a list where every finding is
// Rejected (vacuously true for an empty list) is Inconclusive;
// everything else is mixed evidence.
func Verdict(findings []model.MergedFinding) string {
	allRejected := true
	for _, f := range findings {
		if f.Status == model.StatusSupported {
			return model.VerdictSupported
		}
		if f.Status != model.StatusRejected {
			allRejected = false
		}
	}
	if allRejected {
		return model.VerdictInconclusive
	}
	return model.VerdictMixed
}

// Confidence scores the merged finding list on [0, 0.95].
//
//	t = max(len(findings), 1)
//	confidence = clamp(sup/t*0.9 - con/t*0.2, 0, 0.95)
//
// rounded to 4 decimal places.
func Confidence(findings []model.MergedFinding) float64 {
	t := float64(len(findings))
	if t < 1 {
		t = 1
	}

	var sup, con float64
	for _, f := range findings {
		switch f.Status {
		case model.StatusSupported:
			sup++
		case model.StatusContested:
			con++
		}
	}

	c := (sup/t)*0.9 - (con/t)*0.2
	if c < 0 {
		c = 0
	}
	if c > 0.95 {
		c = 0.95
	}

	return math.Round(c*10000) / 10000
}

// TopSources collects up to k distinct evidence URLs, walking findings
// in report order and each finding's evidence in order. The first
// occurrence of a URL wins.
func TopSources(findings []model.MergedFinding, k int) []string {
	if k <= 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	sources := make([]string, 0, k)

	for _, f := range findings {
		for _, ev := range f.Evidence {
			if ev.URL == "" || seen[ev.URL] {
				continue
			}
			seen[ev.URL] = true
			sources = append(sources, ev.URL)
			if len(sources) >= k {
				return sources
			}
		}
	}

	return sources
}
