// Package pipeline orchestrates one complete post check: gather
// evidence, evaluate with the configured providers, merge, and
// assemble the report.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"claimlens/internal/cache"
	"claimlens/internal/gather"
	"claimlens/internal/llm"
	"claimlens/internal/merge"
	"claimlens/internal/model"
)

// topSourceCount is the number of distinct URLs surfaced in a report
const topSourceCount = 3

// Gatherer collects the evidence bundle for a post URL
type Gatherer interface {
	Gather(ctx context.Context, postURL string) model.PostEvidence
}

// Checker runs the full check pipeline
type Checker struct {
	gatherer  Gatherer
	primary   llm.Provider
	secondary llm.Provider
	config    *model.Config
}

// NewChecker wires the pipeline from configuration. The primary
// provider is required; a secondary provider that cannot be
// constructed (typically a missing API key) is silently disabled
// rather than failing startup.
func NewChecker(ctx context.Context, cfg *model.Config) (*Checker, error) {
	primary, err := llm.NewProvider(ctx, cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("primary provider: %w", err)
	}
	if primary == nil {
		return nil, fmt.Errorf("primary provider is required")
	}

	var secondary llm.Provider
	if cfg.Secondary.Provider != "" {
		secondary, err = llm.NewProvider(ctx, cfg.Secondary)
		if err != nil {
			log.Printf("secondary provider disabled: %v", err)
			secondary = nil
		}
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	return &Checker{
		gatherer:  gather.NewGatherer(cfg, store),
		primary:   primary,
		secondary: secondary,
		config:    cfg,
	}, nil
}

// SecondaryEnabled reports whether a second provider will contribute
func (c *Checker) SecondaryEnabled() bool {
	return c.secondary != nil
}

// CheckURL runs one complete check. The only fatal failure is the
// primary provider: evidence gathering degrades to an empty bundle and
// a failing secondary provider simply contributes nothing to the merge.
func (c *Checker) CheckURL(ctx context.Context, postURL string) (*model.Report, error) {
	bundle := c.gatherer.Gather(ctx, postURL)
	prompt := llm.BuildPrompt(postURL, bundle)

	primaryResult, err := c.primary.Evaluate(ctx, llm.EvaluateRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("%s evaluation: %w", c.primary.Name(), err)
	}

	var secondaryResult *model.ProviderResult
	if c.secondary != nil {
		secondaryResult, err = c.secondary.Evaluate(ctx, llm.EvaluateRequest{Prompt: prompt})
		if err != nil {
			log.Printf("%s evaluation failed, continuing without it: %v", c.secondary.Name(), err)
			secondaryResult = nil
		}
	}

	findings := merge.Findings(primaryResult, secondaryResult)
	verdict := merge.Verdict(findings)
	confidence := merge.Confidence(findings)
	topSources := merge.TopSources(findings, topSourceCount)

	caseID := strings.TrimSpace(primaryResult.CaseID)
	if caseID == "" {
		caseID = uuid.NewString()
	}

	reportURL := strings.TrimSuffix(c.config.Report.BaseURL, "/") + "/" + caseID

	return &model.Report{
		CaseID:        caseID,
		Verdict:       verdict,
		Confidence:    confidence,
		Findings:      findings,
		TopSources:    topSources,
		KnownUnknowns: unionKnownUnknowns(primaryResult, secondaryResult),
		TweetText:     TweetText(verdict, confidence, topSources),
		ReportURL:     reportURL,
	}, nil
}

// unionKnownUnknowns merges both providers' known_unknowns lists,
// primary first, deduplicated, order preserved
func unionKnownUnknowns(results ...*model.ProviderResult) []string {
	seen := make(map[string]bool)
	union := []string{}

	for _, res := range results {
		if res == nil {
			continue
		}
		for _, item := range res.KnownUnknowns {
			item = strings.TrimSpace(item)
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			union = append(union, item)
		}
	}

	return union
}
