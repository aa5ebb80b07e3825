package llm

import (
	"fmt"
	"strings"

	"claimlens/internal/model"
)

// systemPrompt frames every provider call
const systemPrompt = "You are a careful claim-evaluation assistant. You assess how well " +
	"claims in a social media post are supported by the supplied evidence. You never " +
	"assert truth beyond the evidence and you respond with strict JSON only."

// BuildPrompt renders the fixed evaluation prompt from the gathered
// evidence bundle. The instruction text is identical for every
// provider; only the substituted evidence varies.
func BuildPrompt(postURL string, bundle model.PostEvidence) string {
	var b strings.Builder

	b.WriteString("Evaluate the factual claims made in the social media post below.\n\n")

	fmt.Fprintf(&b, "Post URL: %s\n", postURL)
	if bundle.CanonicalURL != "" && bundle.CanonicalURL != postURL {
		fmt.Fprintf(&b, "Canonical URL: %s\n", bundle.CanonicalURL)
	}
	if bundle.PostText != "" {
		fmt.Fprintf(&b, "Post text:\n%s\n", bundle.PostText)
	} else {
		b.WriteString("Post text: (unavailable)\n")
	}

	b.WriteString("\nLinked pages (best-effort snapshots):\n")
	if len(bundle.Links) == 0 {
		b.WriteString("(none found)\n")
	}
	for i, link := range bundle.Links {
		fmt.Fprintf(&b, "%d. %s", i+1, link.URL)
		if link.Tier != "" && link.Tier != model.TierOther {
			fmt.Fprintf(&b, " [source tier: %s]", link.Tier)
		}
		b.WriteString("\n")
		if link.Title != "" {
			fmt.Fprintf(&b, "   Title: %s\n", link.Title)
		}
		for _, excerpt := range link.Excerpts {
			fmt.Fprintf(&b, "   Excerpt: %s\n", excerpt)
		}
	}

	b.WriteString(`
RULES:
1. Identify each distinct factual claim the post makes.
2. For each claim report a status: "Supported", "Contested", or "Rejected".
3. Cite evidence as exact quotes with their source URLs. Only cite URLs listed above; if the listed evidence is insufficient, say so in known_unknowns instead of inventing sources.
4. Tag each evidence item with a source tier: "official", "regulator", "peerreview", "news", "company", or "other".
5. List what could not be verified in known_unknowns.
6. Record your reasoning steps briefly in audit.

Respond with ONLY a JSON object of this exact shape:
{
  "case_id": "<short identifier for this evaluation>",
  "findings": [
    {
      "claim": "<claim text>",
      "status": "Supported|Contested|Rejected",
      "evidence": [{"quote": "<exact quote>", "url": "<source url>", "tier": "<tier>"}],
      "notes": "<one sentence>"
    }
  ],
  "scores": {"evidence_coverage": 0.0, "source_quality": 0.0},
  "known_unknowns": ["<unverifiable point>"],
  "audit": ["<reasoning step>"]
}
`)

	return b.String()
}
