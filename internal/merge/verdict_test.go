package merge

import (
	"testing"

	"claimlens/internal/model"
)

func mf(status model.Status) model.MergedFinding {
	return model.MergedFinding{Claim: "c", Status: status}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		name     string
		findings []model.MergedFinding
		want     string
	}{
		{"empty list", nil, model.VerdictInconclusive},
		{"single supported", []model.MergedFinding{mf(model.StatusSupported)}, model.VerdictSupported},
		{"supported beats rejected", []model.MergedFinding{mf(model.StatusRejected), mf(model.StatusSupported)}, model.VerdictSupported},
		{"all rejected", []model.MergedFinding{mf(model.StatusRejected), mf(model.StatusRejected)}, model.VerdictInconclusive},
		{"contested and rejected", []model.MergedFinding{mf(model.StatusContested), mf(model.StatusRejected)}, model.VerdictMixed},
		{"contested only", []model.MergedFinding{mf(model.StatusContested)}, model.VerdictMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Verdict(tt.findings); got != tt.want {
				t.Errorf("Verdict() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfidence_ExactValues(t *testing.T) {
	tests := []struct {
		name     string
		findings []model.MergedFinding
		want     float64
	}{
		{"empty list", nil, 0},
		{"single supported", []model.MergedFinding{mf(model.StatusSupported)}, 0.9},
		{"single contested", []model.MergedFinding{mf(model.StatusContested)}, 0},
		{"single rejected", []model.MergedFinding{mf(model.StatusRejected)}, 0},
		{"supported and contested", []model.MergedFinding{mf(model.StatusSupported), mf(model.StatusContested)}, 0.35},
		{"two supported one rejected", []model.MergedFinding{mf(model.StatusSupported), mf(model.StatusSupported), mf(model.StatusRejected)}, 0.6},
		{"rounded to 4 places", []model.MergedFinding{mf(model.StatusSupported), mf(model.StatusContested), mf(model.StatusRejected)}, 0.2333},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.findings); got != tt.want {
				t.Errorf("Confidence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidence_AlwaysInRange(t *testing.T) {
	// Exercise every composition of up to 3 findings
	statuses := []model.Status{model.StatusSupported, model.StatusContested, model.StatusRejected}
	var lists [][]model.MergedFinding
	lists = append(lists, nil)
	for _, a := range statuses {
		lists = append(lists, []model.MergedFinding{mf(a)})
		for _, b := range statuses {
			for _, c := range statuses {
				lists = append(lists, []model.MergedFinding{mf(a), mf(b), mf(c)})
			}
		}
	}

	for _, findings := range lists {
		got := Confidence(findings)
		if got < 0 || got > 0.95 {
			t.Errorf("Confidence(%v) = %v, outside [0, 0.95]", findings, got)
		}
	}
}

func TestTopSources(t *testing.T) {
	findings := []model.MergedFinding{
		{Claim: "a", Evidence: []model.Evidence{
			ev("q1", "https://fda.gov/1", model.TierRegulator),
			ev("q2", "https://fda.gov/1", model.TierRegulator), // Duplicate URL
			ev("q3", "", model.TierOther),                      // Empty URL skipped
		}},
		{Claim: "b", Evidence: []model.Evidence{
			ev("q4", "https://nature.com/2", model.TierPeerReview),
			ev("q5", "https://bbc.com/3", model.TierNews),
			ev("q6", "https://reuters.com/4", model.TierNews),
		}},
	}

	got := TopSources(findings, 3)

	want := []string{"https://fda.gov/1", "https://nature.com/2", "https://bbc.com/3"}
	if len(got) != 3 {
		t.Fatalf("expected 3 sources, got %d: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopSources_NeverExceedsKOrDuplicates(t *testing.T) {
	findings := []model.MergedFinding{
		{Claim: "a", Evidence: []model.Evidence{
			ev("q1", "https://a.example", model.TierNews),
			ev("q2", "https://a.example", model.TierNews),
			ev("q3", "https://b.example", model.TierNews),
		}},
	}

	for k := 0; k <= 5; k++ {
		got := TopSources(findings, k)
		if len(got) > k {
			t.Errorf("k=%d: returned %d sources", k, len(got))
		}
		seen := make(map[string]bool)
		for _, u := range got {
			if seen[u] {
				t.Errorf("k=%d: duplicate URL %q", k, u)
			}
			seen[u] = true
		}
	}
}
