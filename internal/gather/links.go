package gather

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// extractLinks pulls outbound link URLs from an HTML fragment, in
// document order, deduplicated, excluding anchors back into the post's
// own platform. Used on the oEmbed markup, where outbound references
// appear as plain anchors.
func extractLinks(fragment string, max int) []string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var links []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := strings.TrimSpace(attr.Val)
				if keepLink(href) && !seen[href] {
					seen[href] = true
					links = append(links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if max > 0 && len(links) > max {
		links = links[:max]
	}
	return links
}

// keepLink filters out non-http links and links back into the posting
// platform itself (profile links, media pages, hashtag searches).
// Shortener links (t.co) are kept: the snapshot fetcher follows their
// redirect to the real target.
func keepLink(href string) bool {
	parsed, err := url.Parse(href)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	switch host {
	case "twitter.com", "x.com", "pic.twitter.com":
		return false
	}
	return host != ""
}
