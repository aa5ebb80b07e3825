// Package merge combines the structured outputs of up to two model
// providers into one consolidated finding list. All functions are pure
// and deterministic: the same inputs always produce the same output,
// byte for byte.
package merge

import (
	"sort"
	"strings"

	"claimlens/internal/model"
)

// DedupeEvidence normalizes and deduplicates evidence items.
// Quote and URL are trimmed, a missing tier defaults to other, and any
// item whose (quote, url) pair was already seen is dropped. First-seen
// order is preserved. Malformed entries are coerced, never rejected,
// so this function cannot fail. It is idempotent.
func DedupeEvidence(items []model.Evidence) []model.Evidence {
	seen := make(map[[2]string]bool, len(items))
	out := make([]model.Evidence, 0, len(items))

	for _, ev := range items {
		ev.Quote = strings.TrimSpace(ev.Quote)
		ev.URL = strings.TrimSpace(ev.URL)
		if ev.Tier == "" {
			ev.Tier = model.TierOther
		}

		key := [2]string{ev.Quote, ev.URL}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}

	return out
}

// Findings merges the findings of zero or more provider results into
// one consolidated list, one entry per distinct claim.
//
// Findings are grouped by trimmed claim text (exact match). For each
// group the evidence union is deduplicated and the status is recomputed:
// Supported only when every provider said Supported and at least two
// high-tier evidence items remain, Contested when at least one high-tier
// item remains, Rejected otherwise. A claim with no evidence and no
// unanimous Supported status therefore resolves to Rejected.
//
// The result is sorted by status priority (Supported, Contested,
// Rejected) with ties broken by descending evidence count. The sort is
// stable over first-encounter claim order, which makes the merge
// insensitive to provider order when both report the same claims.
func Findings(results ...*model.ProviderResult) []model.MergedFinding {
	type group struct {
		evidence []model.Evidence
		statuses map[model.Status]bool
	}

	groups := make(map[string]*group)
	var order []string

	for _, res := range results {
		if res == nil {
			continue
		}
		for _, f := range res.Findings {
			claim := strings.TrimSpace(f.Claim)
			g, ok := groups[claim]
			if !ok {
				g = &group{statuses: make(map[model.Status]bool)}
				groups[claim] = g
				order = append(order, claim)
			}
			g.evidence = append(g.evidence, f.Evidence...)
			g.statuses[model.ParseStatus(string(f.Status))] = true
		}
	}

	merged := make([]model.MergedFinding, 0, len(order))
	for _, claim := range order {
		g := groups[claim]
		evidence := DedupeEvidence(g.evidence)

		high := 0
		for _, ev := range evidence {
			if ev.Tier.IsHigh() {
				high++
			}
		}

		merged = append(merged, model.MergedFinding{
			Claim:    claim,
			Status:   recomputeStatus(g.statuses, high),
			Evidence: evidence,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		pi, pj := merged[i].Status.Priority(), merged[j].Status.Priority()
		if pi != pj {
			return pi < pj
		}
		return len(merged[i].Evidence) > len(merged[j].Evidence)
	})

	return merged
}

// recomputeStatus derives the merged status for one claim from the set
// of statuses reported across providers and the high-tier evidence count
func recomputeStatus(statuses map[model.Status]bool, high int) model.Status {
	unanimousSupport := len(statuses) == 1 && statuses[model.StatusSupported]

	switch {
	case unanimousSupport && high >= 2:
		return model.StatusSupported
	case high >= 1:
		return model.StatusContested
	default:
		return model.StatusRejected
	}
}
