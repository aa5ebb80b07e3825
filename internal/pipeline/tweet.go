package pipeline

import "fmt"

// tweetLimit is the maximum rune length of a post on X
const tweetLimit = 280

// TweetText renders the one-post summary of a report. The output is
// always at most 280 runes, trimming the source URL first and the
// verdict sentence as a last resort.
func TweetText(verdict string, confidence float64, topSources []string) string {
	text := fmt.Sprintf("Claim check: %s (confidence %.2f).", verdict, confidence)

	if len(topSources) > 0 {
		withSource := text + " Top source: " + topSources[0]
		if runeLen(withSource) <= tweetLimit {
			text = withSource
		}
	}

	return truncateRunes(text, tweetLimit)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
