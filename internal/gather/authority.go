package gather

import (
	"net/url"
	"strings"

	"claimlens/internal/model"
)

// TierClassifier maps evidence hosts to source-credibility tiers.
// The tier is a hint attached to gathered link snapshots so the models
// see how credible each linked source is; providers may still report
// their own tiers, which the merge takes at face value.
type TierClassifier struct {
	domainTiers map[string]model.Tier
	overrides   map[string]model.Tier
}

// NewTierClassifier builds a classifier from the configured domain lists
func NewTierClassifier(cfg *model.TierConfig) *TierClassifier {
	if cfg == nil {
		cfg = &model.DefaultConfig().Tiers
	}

	c := &TierClassifier{
		domainTiers: make(map[string]model.Tier),
		overrides:   make(map[string]model.Tier),
	}

	add := func(domains []string, tier model.Tier) {
		for _, d := range domains {
			c.domainTiers[strings.ToLower(d)] = tier
		}
	}
	add(cfg.OfficialDomains, model.TierOfficial)
	add(cfg.RegulatorDomains, model.TierRegulator)
	add(cfg.PeerReviewDomains, model.TierPeerReview)
	add(cfg.NewsDomains, model.TierNews)
	add(cfg.CompanyDomains, model.TierCompany)

	for host, tier := range cfg.DomainMap {
		c.overrides[strings.ToLower(host)] = model.ParseTier(tier)
	}

	return c
}

// Classify returns the tier for a URL's host
func (c *TierClassifier) Classify(rawURL string) model.Tier {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.TierOther
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return model.TierOther
	}

	if tier, ok := c.overrides[host]; ok {
		return tier
	}

	// Exact match, then registered-domain suffix match
	// (docs.fda.gov matches fda.gov)
	if tier, ok := c.domainTiers[host]; ok {
		return tier
	}
	for domain, tier := range c.domainTiers {
		if strings.HasSuffix(host, "."+domain) {
			return tier
		}
	}

	// Government and academic TLDs rank as official/peer-reviewed even
	// when not listed explicitly
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") {
		return model.TierOfficial
	}
	if strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPeerReview
	}

	return model.TierOther
}
