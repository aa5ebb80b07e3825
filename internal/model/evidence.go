package model

import "strings"

// Evidence is a single cited quote plus its source URL.
// Identity for deduplication is the (trimmed quote, trimmed URL) pair.
type Evidence struct {
	Quote string `json:"quote"`
	URL   string `json:"url"`
	Tier  Tier   `json:"tier"`
}

// Tier classifies the credibility of an evidence source
type Tier string

const (
	TierOfficial   Tier = "official"   // Government, standards bodies, primary documents
	TierRegulator  Tier = "regulator"  // Regulatory agencies
	TierPeerReview Tier = "peerreview" // Peer-reviewed publications, academic sources
	TierNews       Tier = "news"       // Established news organizations
	TierCompany    Tier = "company"    // Company statements, press releases
	TierOther      Tier = "other"      // Everything else, including missing
)

// IsHigh reports whether the tier counts toward the high-credibility
// threshold used when recomputing merged statuses.
func (t Tier) IsHigh() bool {
	switch t {
	case TierOfficial, TierRegulator, TierPeerReview:
		return true
	}
	return false
}

// ParseTier normalizes a provider-reported tier string.
// Unknown or empty values default to other.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "official":
		return TierOfficial
	case "regulator":
		return TierRegulator
	case "peerreview", "peer-review", "peer_review":
		return TierPeerReview
	case "news":
		return TierNews
	case "company":
		return TierCompany
	default:
		return TierOther
	}
}

// LinkSnapshot is a best-effort capture of a page linked from the post
type LinkSnapshot struct {
	URL      string   `json:"url"`
	Title    string   `json:"title,omitempty"`
	Excerpts []string `json:"excerpts,omitempty"` // At most two short text excerpts
	Tier     Tier     `json:"tier,omitempty"`     // Host-based credibility hint
}

// PostEvidence bundles everything gathered for one post URL.
// Gathering is best-effort: any field may be empty, never an error.
type PostEvidence struct {
	PostText     string         `json:"post_text"`
	CanonicalURL string         `json:"canonical_url"`
	Links        []LinkSnapshot `json:"links,omitempty"` // Deduplicated, at most three
}
