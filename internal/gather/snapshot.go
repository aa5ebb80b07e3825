package gather

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"claimlens/internal/cache"
	"claimlens/internal/model"
)

// snapshotLinks captures up to maxLinks pages concurrently, bounded by
// the snapshot worker count. Result order matches input order.
func (g *Gatherer) snapshotLinks(ctx context.Context, links []string) []model.LinkSnapshot {
	if len(links) == 0 {
		return nil
	}

	snapshots := make([]model.LinkSnapshot, len(links))
	semaphore := make(chan struct{}, g.snapshotWorkers)
	var wg sync.WaitGroup

	for i, link := range links {
		wg.Add(1)
		go func(idx int, rawURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				snapshots[idx] = model.LinkSnapshot{URL: rawURL, Tier: g.classifier.Classify(rawURL)}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			snapshots[idx] = g.snapshotOne(ctx, rawURL)
		}(i, link)
	}

	wg.Wait()
	return snapshots
}

// snapshotOne captures one linked page: title plus up to two short
// excerpts. Any failure degrades to a snapshot with empty fields.
func (g *Gatherer) snapshotOne(ctx context.Context, rawURL string) model.LinkSnapshot {
	key := cache.Key("snapshot:" + rawURL)
	if g.cache != nil {
		if cached, found := g.cache.Get(key); found {
			var snap model.LinkSnapshot
			if err := json.Unmarshal(cached, &snap); err == nil {
				return snap
			}
		}
	}

	snap := model.LinkSnapshot{
		URL:  rawURL,
		Tier: g.classifier.Classify(rawURL),
	}

	if g.robots != nil && !g.robots.Allowed(ctx, rawURL) {
		return snap
	}

	if err := g.limiter.Wait(ctx, rawURL); err != nil {
		return snap
	}

	finalURL, body, err := g.fetchPage(ctx, rawURL)
	if err != nil {
		return snap
	}

	// Shortener links resolve to their target; record where we landed
	snap.URL = finalURL.String()
	snap.Tier = g.classifier.Classify(snap.URL)

	article, err := readability.FromReader(bytes.NewReader(body), finalURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		snap.Title = strings.TrimSpace(article.Title)
		snap.Excerpts = buildExcerpts(article.TextContent, g.maxExcerpts, g.excerptRunes)
	} else {
		// Readability gives up on sparse pages; fall back to raw text
		if doc, perr := html.Parse(bytes.NewReader(body)); perr == nil {
			snap.Title = documentTitle(doc)
			snap.Excerpts = buildExcerpts(visibleText(doc), g.maxExcerpts, g.excerptRunes)
		}
	}

	if g.cache != nil {
		if raw, err := json.Marshal(snap); err == nil {
			_ = g.cache.Set(key, raw, 0)
		}
	}

	return snap
}

func (g *Gatherer) fetchPage(ctx context.Context, rawURL string) (*url.URL, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}

	return resp.Request.URL, body, nil
}

// documentTitle returns the <title> text of a parsed document
func documentTitle(doc *html.Node) string {
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
