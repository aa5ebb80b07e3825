package merge

import (
	"reflect"
	"testing"

	"claimlens/internal/model"
)

func ev(quote, url string, tier model.Tier) model.Evidence {
	return model.Evidence{Quote: quote, URL: url, Tier: tier}
}

func TestDedupeEvidence_TrimsAndDefaults(t *testing.T) {
	items := []model.Evidence{
		{Quote: "  recall notice  ", URL: " https://fda.gov/a ", Tier: model.TierRegulator},
		{Quote: "unlabeled", URL: "https://blog.example.com/p"},
	}

	out := DedupeEvidence(items)

	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].Quote != "recall notice" || out[0].URL != "https://fda.gov/a" {
		t.Errorf("expected trimmed fields, got %q %q", out[0].Quote, out[0].URL)
	}
	if out[1].Tier != model.TierOther {
		t.Errorf("expected missing tier to default to other, got %q", out[1].Tier)
	}
}

func TestDedupeEvidence_DropsDuplicatesFirstSeenOrder(t *testing.T) {
	items := []model.Evidence{
		ev("q1", "https://a.example", model.TierNews),
		ev("q2", "https://b.example", model.TierNews),
		ev("  q1  ", " https://a.example ", model.TierOfficial), // Same identity after trim
		ev("q1", "https://b.example", model.TierNews),           // Same quote, different URL: kept
	}

	out := DedupeEvidence(items)

	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	if out[0].URL != "https://a.example" || out[1].URL != "https://b.example" {
		t.Errorf("first-seen order not preserved: %+v", out)
	}
	// The first occurrence wins wholesale, including its tier
	if out[0].Tier != model.TierNews {
		t.Errorf("expected first-seen tier news, got %q", out[0].Tier)
	}
}

func TestDedupeEvidence_Idempotent(t *testing.T) {
	items := []model.Evidence{
		ev(" q ", "https://a.example", ""),
		ev("q", "https://a.example", model.TierNews),
		ev("other", "https://b.example", model.TierOfficial),
	}

	once := DedupeEvidence(items)
	twice := DedupeEvidence(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedupe not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestRecomputeStatus_BranchTable(t *testing.T) {
	tests := []struct {
		name     string
		statuses []model.Status
		high     int
		want     model.Status
	}{
		{"unanimous supported, high 2", []model.Status{model.StatusSupported}, 2, model.StatusSupported},
		{"unanimous supported, high 1", []model.Status{model.StatusSupported}, 1, model.StatusContested},
		{"split statuses, high 3", []model.Status{model.StatusSupported, model.StatusContested}, 3, model.StatusContested},
		{"rejected, high 0", []model.Status{model.StatusRejected}, 0, model.StatusRejected},
		{"unanimous supported, high 0", []model.Status{model.StatusSupported}, 0, model.StatusRejected},
		{"contested only, high 0", []model.Status{model.StatusContested}, 0, model.StatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[model.Status]bool)
			for _, s := range tt.statuses {
				set[s] = true
			}
			if got := recomputeStatus(set, tt.high); got != tt.want {
				t.Errorf("recomputeStatus(%v, %d) = %q, want %q", tt.statuses, tt.high, got, tt.want)
			}
		})
	}
}

func TestFindings_GroupsByTrimmedClaim(t *testing.T) {
	a := &model.ProviderResult{Findings: []model.Finding{
		{Claim: "the recall is official ", Status: model.StatusSupported, Evidence: []model.Evidence{
			ev("q1", "https://fda.gov/recall", model.TierRegulator),
		}},
	}}
	b := &model.ProviderResult{Findings: []model.Finding{
		{Claim: " the recall is official", Status: model.StatusSupported, Evidence: []model.Evidence{
			ev("q2", "https://who.int/notice", model.TierOfficial),
		}},
	}}

	merged := Findings(a, b)

	if len(merged) != 1 {
		t.Fatalf("expected 1 merged finding, got %d", len(merged))
	}
	if merged[0].Claim != "the recall is official" {
		t.Errorf("expected trimmed claim key, got %q", merged[0].Claim)
	}
	if merged[0].Status != model.StatusSupported {
		t.Errorf("expected Supported (unanimous, 2 high-tier), got %q", merged[0].Status)
	}
	if len(merged[0].Evidence) != 2 {
		t.Errorf("expected evidence union of 2, got %d", len(merged[0].Evidence))
	}
}

func TestFindings_ZeroEvidenceResolvesRejected(t *testing.T) {
	res := &model.ProviderResult{Findings: []model.Finding{
		{Claim: "unverifiable claim", Status: model.StatusContested},
	}}

	merged := Findings(res)

	if len(merged) != 1 || merged[0].Status != model.StatusRejected {
		t.Fatalf("expected single Rejected finding, got %+v", merged)
	}
}

func TestFindings_SortContract(t *testing.T) {
	res := &model.ProviderResult{Findings: []model.Finding{
		{Claim: "rejected claim", Status: model.StatusRejected},
		{Claim: "contested small", Status: model.StatusContested, Evidence: []model.Evidence{
			ev("q1", "https://fda.gov/1", model.TierRegulator),
		}},
		{Claim: "supported claim", Status: model.StatusSupported, Evidence: []model.Evidence{
			ev("q2", "https://fda.gov/2", model.TierRegulator),
			ev("q3", "https://nature.com/3", model.TierPeerReview),
		}},
		{Claim: "contested big", Status: model.StatusContested, Evidence: []model.Evidence{
			ev("q4", "https://sec.gov/4", model.TierRegulator),
			ev("q5", "https://reuters.com/5", model.TierNews),
			ev("q6", "https://bbc.com/6", model.TierNews),
		}},
	}}

	merged := Findings(res)

	wantOrder := []string{"supported claim", "contested big", "contested small", "rejected claim"}
	if len(merged) != len(wantOrder) {
		t.Fatalf("expected %d findings, got %d", len(wantOrder), len(merged))
	}
	for i, want := range wantOrder {
		if merged[i].Claim != want {
			t.Errorf("position %d: got %q, want %q", i, merged[i].Claim, want)
		}
	}
}

func TestFindings_ProviderOrderInsensitive(t *testing.T) {
	findings := []model.Finding{
		{Claim: "claim a", Status: model.StatusSupported, Evidence: []model.Evidence{
			ev("qa", "https://fda.gov/a", model.TierRegulator),
			ev("qb", "https://who.int/b", model.TierOfficial),
		}},
		{Claim: "claim b", Status: model.StatusContested, Evidence: []model.Evidence{
			ev("qc", "https://nature.com/c", model.TierPeerReview),
		}},
	}
	a := &model.ProviderResult{Findings: findings}
	b := &model.ProviderResult{Findings: findings}

	ab := Findings(a, b)
	ba := Findings(b, a)

	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("merge depends on provider order:\nab: %+v\nba: %+v", ab, ba)
	}
}

func TestFindings_NilAndEmptyInputs(t *testing.T) {
	if got := Findings(); len(got) != 0 {
		t.Errorf("expected empty result for no providers, got %+v", got)
	}
	if got := Findings(nil, nil); len(got) != 0 {
		t.Errorf("expected empty result for nil providers, got %+v", got)
	}
	if got := Findings(&model.ProviderResult{}, nil); len(got) != 0 {
		t.Errorf("expected empty result for empty findings, got %+v", got)
	}
}
