package gather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"claimlens/internal/cache"
)

// defaultOEmbedBase is the public, keyless oEmbed endpoint for X posts
const defaultOEmbedBase = "https://publish.twitter.com/oembed"

type oembedResponse struct {
	URL        string `json:"url"`
	AuthorName string `json:"author_name"`
	HTML       string `json:"html"`
}

// fetchPost resolves a post URL into its text, canonical URL, and
// outbound links via the oEmbed endpoint
func (g *Gatherer) fetchPost(ctx context.Context, postURL string) (text, canonical string, links []string, err error) {
	body, err := g.oembedBody(ctx, postURL)
	if err != nil {
		return "", "", nil, err
	}

	var oe oembedResponse
	if err := json.Unmarshal(body, &oe); err != nil {
		return "", "", nil, fmt.Errorf("decode oembed: %w", err)
	}

	return postTextFromHTML(oe.HTML), oe.URL, extractLinks(oe.HTML, g.maxLinks), nil
}

func (g *Gatherer) oembedBody(ctx context.Context, postURL string) ([]byte, error) {
	endpoint := g.oembedBase + "?omit_script=1&url=" + url.QueryEscape(postURL)

	key := cache.Key("oembed:" + postURL)
	if g.cache != nil {
		if cached, found := g.cache.Get(key); found {
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch oembed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oembed status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read oembed body: %w", err)
	}

	if g.cache != nil {
		_ = g.cache.Set(key, body, 0)
	}

	return body, nil
}

// postTextFromHTML extracts the post body from oEmbed markup. The
// markup is a blockquote whose first <p> holds the post text; the
// attribution line after it is dropped.
func postTextFromHTML(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	var para *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if para != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			para = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	if para != nil {
		return visibleText(para)
	}
	return visibleText(doc)
}
