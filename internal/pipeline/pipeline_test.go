package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"claimlens/internal/llm"
	"claimlens/internal/model"
)

// mockProvider returns a canned result or error
type mockProvider struct {
	name   string
	result *model.ProviderResult
	err    error
	calls  int
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Evaluate(_ context.Context, _ llm.EvaluateRequest) (*model.ProviderResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// emptyGatherer returns an empty evidence bundle
type emptyGatherer struct{}

func (emptyGatherer) Gather(_ context.Context, _ string) model.PostEvidence {
	return model.PostEvidence{}
}

func testChecker(primary, secondary llm.Provider) *Checker {
	cfg := model.DefaultConfig()
	return &Checker{
		gatherer:  emptyGatherer{},
		primary:   primary,
		secondary: secondary,
		config:    cfg,
	}
}

func supportedResult(caseID string) *model.ProviderResult {
	return &model.ProviderResult{
		CaseID: caseID,
		Findings: []model.Finding{
			{
				Claim:  "the additive was banned",
				Status: model.StatusSupported,
				Evidence: []model.Evidence{
					{Quote: "ban effective June 1", URL: "https://fda.gov/a", Tier: model.TierRegulator},
					{Quote: "rule published", URL: "https://regulations.gov/b", Tier: model.TierOfficial},
				},
			},
		},
		KnownUnknowns: []string{"enforcement timeline"},
	}
}

func TestCheckURL_PrimaryOnly(t *testing.T) {
	primary := &mockProvider{name: "xai", result: supportedResult("case-7")}
	checker := testChecker(primary, nil)

	report, err := checker.CheckURL(context.Background(), "https://x.com/u/status/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if report.CaseID != "case-7" {
		t.Errorf("expected provider case id, got %q", report.CaseID)
	}
	if report.Verdict != model.VerdictSupported {
		t.Errorf("unexpected verdict: %q", report.Verdict)
	}
	if len(report.Findings) != 1 {
		t.Errorf("expected 1 finding, got %d", len(report.Findings))
	}
	if len(report.TopSources) != 2 {
		t.Errorf("expected 2 top sources, got %v", report.TopSources)
	}
	if !strings.HasSuffix(report.ReportURL, "/case-7") {
		t.Errorf("report URL missing case id: %q", report.ReportURL)
	}
	if report.TweetText == "" || len([]rune(report.TweetText)) > 280 {
		t.Errorf("bad tweet text: %q", report.TweetText)
	}
}

func TestCheckURL_PrimaryFailureIsFatal(t *testing.T) {
	primary := &mockProvider{name: "xai", err: errors.New("rate limited")}
	secondary := &mockProvider{name: "gemini", result: supportedResult("")}
	checker := testChecker(primary, secondary)

	if _, err := checker.CheckURL(context.Background(), "https://x.com/u/status/1"); err == nil {
		t.Fatal("expected error when the primary provider fails")
	}
	if secondary.calls != 0 {
		t.Error("secondary provider should not run after a primary failure")
	}
}

func TestCheckURL_SecondaryFailureIsNotFatal(t *testing.T) {
	primary := &mockProvider{name: "xai", result: supportedResult("case-9")}
	secondary := &mockProvider{name: "gemini", err: errors.New("quota exceeded")}
	checker := testChecker(primary, secondary)

	report, err := checker.CheckURL(context.Background(), "https://x.com/u/status/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if secondary.calls != 1 {
		t.Error("secondary provider was never invoked")
	}
	if report.Verdict != model.VerdictSupported {
		t.Errorf("secondary failure changed the verdict: %q", report.Verdict)
	}
}

func TestCheckURL_MergesSecondaryContribution(t *testing.T) {
	primary := &mockProvider{name: "xai", result: supportedResult("case-11")}
	secondary := &mockProvider{
		name: "gemini",
		result: &model.ProviderResult{
			Findings: []model.Finding{
				{
					Claim:  "the additive was banned",
					Status: model.StatusContested,
					Evidence: []model.Evidence{
						{Quote: "industry disputes the finding", URL: "https://example.com/c", Tier: model.TierNews},
					},
				},
			},
			KnownUnknowns: []string{"enforcement timeline", "appeal outcome"},
		},
	}
	checker := testChecker(primary, secondary)

	report, err := checker.CheckURL(context.Background(), "https://x.com/u/status/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(report.Findings) != 1 {
		t.Fatalf("expected findings to merge on claim text, got %d", len(report.Findings))
	}
	if report.Findings[0].Status != model.StatusContested {
		t.Errorf("disagreeing providers should yield Contested, got %q", report.Findings[0].Status)
	}
	if len(report.KnownUnknowns) != 2 {
		t.Errorf("expected deduplicated union of unknowns, got %v", report.KnownUnknowns)
	}
	if report.KnownUnknowns[0] != "enforcement timeline" {
		t.Errorf("primary unknowns should come first, got %v", report.KnownUnknowns)
	}
}

func TestCheckURL_GeneratesCaseIDWhenMissing(t *testing.T) {
	primary := &mockProvider{name: "xai", result: supportedResult("  ")}
	checker := testChecker(primary, nil)

	report, err := checker.CheckURL(context.Background(), "https://x.com/u/status/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.TrimSpace(report.CaseID) == "" {
		t.Error("expected a generated case id")
	}
	if !strings.HasSuffix(report.ReportURL, "/"+report.CaseID) {
		t.Errorf("report URL does not end with case id: %q", report.ReportURL)
	}
}

func TestTweetText_Limit(t *testing.T) {
	long := "https://example.com/" + strings.Repeat("x", 400)

	text := TweetText(model.VerdictMixed, 0.4321, []string{long})
	if got := len([]rune(text)); got > 280 {
		t.Errorf("tweet text exceeds 280 runes: %d", got)
	}
	if !strings.Contains(text, model.VerdictMixed) {
		t.Errorf("tweet text missing verdict: %q", text)
	}
}
