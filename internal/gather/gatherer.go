// Package gather collects best-effort supporting evidence for a post:
// the post's own text, its canonical URL, and snapshots of up to three
// linked pages. Nothing here is fatal; every failure degrades to empty
// fields so the evaluation can proceed on whatever was found.
package gather

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"claimlens/internal/cache"
	"claimlens/internal/model"
	"claimlens/internal/util"
	"claimlens/internal/worker"
)

// Gatherer fetches post text and link snapshots
type Gatherer struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	cache      cache.Cache
	classifier *TierClassifier

	userAgent       string
	maxBytes        int64
	maxLinks        int
	maxExcerpts     int
	excerptRunes    int
	snapshotWorkers int
	oembedBase      string
}

// NewGatherer creates a gatherer from configuration. Pass a nil store
// to disable caching.
func NewGatherer(cfg *model.Config, store cache.Cache) *Gatherer {
	var robots *util.RobotsChecker
	if cfg.Gather.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	workers := cfg.Concurrency.SnapshotWorkers
	if workers <= 0 {
		workers = 1
	}

	return &Gatherer{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		robots:          robots,
		limiter:         worker.NewLimiter(cfg.Gather.RatePerDomain, cfg.Gather.RateBurst),
		cache:           store,
		classifier:      NewTierClassifier(&cfg.Tiers),
		userAgent:       cfg.HTTP.UserAgent,
		maxBytes:        cfg.HTTP.MaxBodyBytes,
		maxLinks:        cfg.Gather.MaxLinks,
		maxExcerpts:     cfg.Gather.MaxExcerpts,
		excerptRunes:    cfg.Gather.ExcerptRunes,
		snapshotWorkers: workers,
		oembedBase:      defaultOEmbedBase,
	}
}

// Gather collects everything available for one post URL. It never
// returns an error: a post that cannot be resolved yields an empty
// bundle and the check continues on the URL alone.
func (g *Gatherer) Gather(ctx context.Context, postURL string) model.PostEvidence {
	text, canonical, links, err := g.fetchPost(ctx, postURL)
	if err != nil {
		log.Printf("gather: post lookup failed for %s: %v", postURL, err)
		return model.PostEvidence{}
	}

	return model.PostEvidence{
		PostText:     text,
		CanonicalURL: canonical,
		Links:        g.snapshotLinks(ctx, links),
	}
}
