package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"claimlens/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubChecker struct {
	report *model.Report
	err    error
	calls  int
}

func (s *stubChecker) CheckURL(_ context.Context, _ string) (*model.Report, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func doCheck(t *testing.T, checker CheckService, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/check", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	New(checker).Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleCheck_OK(t *testing.T) {
	checker := &stubChecker{
		report: &model.Report{
			CaseID:     "case-1",
			Verdict:    model.VerdictSupported,
			Confidence: 0.81,
			TweetText:  "Claim check: " + model.VerdictSupported,
			ReportURL:  "https://claimlens.example.com/reports/case-1",
		},
	}

	rec := doCheck(t, checker, `{"x_url": "https://x.com/user/status/1234567890"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var report model.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if report.CaseID != "case-1" || report.Verdict != model.VerdictSupported {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestHandleCheck_MissingURL(t *testing.T) {
	checker := &stubChecker{}

	rec := doCheck(t, checker, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if checker.calls != 0 {
		t.Error("checker should not run for a missing x_url")
	}
}

func TestHandleCheck_MalformedURL(t *testing.T) {
	checker := &stubChecker{}

	for _, url := range []string{
		"not a url",
		"https://example.com/user/status/1",
		"https://x.com/user",
		"https://x.com/user/likes",
		"ftp://x.com/user/status/1",
	} {
		rec := doCheck(t, checker, `{"x_url": "`+url+`"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", url, rec.Code)
		}
	}
	if checker.calls != 0 {
		t.Error("checker should not run for malformed URLs")
	}
}

func TestHandleCheck_AcceptedURLVariants(t *testing.T) {
	checker := &stubChecker{report: &model.Report{Verdict: model.VerdictInconclusive}}

	for _, url := range []string{
		"https://x.com/NASA/status/1790000000000000000",
		"https://twitter.com/NASA/status/1790000000000000000",
		"https://www.x.com/NASA/status/1790000000000000000",
		"https://mobile.twitter.com/NASA/statuses/1790000000000000000",
		"http://twitter.com/NASA/status/1790000000000000000?s=20",
	} {
		rec := doCheck(t, checker, `{"x_url": "`+url+`"}`)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", url, rec.Code)
		}
	}
}

func TestHandleCheck_InvalidJSON(t *testing.T) {
	rec := doCheck(t, &stubChecker{}, `{"x_url": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCheck_EvaluationFailure(t *testing.T) {
	checker := &stubChecker{err: errors.New("xai evaluation: rate limited")}

	rec := doCheck(t, checker, `{"x_url": "https://x.com/user/status/1"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp struct {
		Error         string   `json:"error"`
		Verdict       string   `json:"verdict"`
		KnownUnknowns []string `json:"known_unknowns"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Verdict != model.VerdictInconclusive {
		t.Errorf("expected degraded Inconclusive verdict, got %q", resp.Verdict)
	}
	if resp.Error == "" || len(resp.KnownUnknowns) == 0 {
		t.Errorf("expected populated error shape, got %+v", resp)
	}
}

func TestWrongMethod(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/check", nil)
	rec := httptest.NewRecorder()
	New(&stubChecker{}).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	New(&stubChecker{}).Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
