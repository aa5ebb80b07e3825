package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"claimlens/internal/pipeline"
	"claimlens/internal/server"
)

var (
	outJSON      string
	checkTimeout time.Duration
	noCache      bool
	noRobots     bool
	userAgent    string
	primaryName  string
	primaryModel string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <post-url>",
	Short: "Check a single X post and print the report",
	Long: `Check runs the full pipeline for one post:
- Fetch the post text and its outbound links
- Snapshot up to three linked pages (title plus short excerpts)
- Submit the evidence to the configured model providers
- Merge their evaluations into one verdict with cited sources

Example:
  claimlens check https://x.com/user/status/1790000000000000000
  claimlens check https://x.com/user/status/179... --json report.json
  claimlens check https://x.com/user/status/179... --provider ollama --model llama3`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// Output flags
	checkCmd.Flags().StringVar(&outJSON, "json", "", "write the report to this path instead of stdout")

	// HTTP flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the snapshot cache (force fresh fetches)")
	checkCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks for linked pages")

	// Provider flags
	checkCmd.Flags().StringVar(&primaryName, "provider", "", "primary provider override (xai, openai, gemini, anthropic, ollama)")
	checkCmd.Flags().StringVar(&primaryModel, "model", "", "primary model override")
}

func runCheck(cmd *cobra.Command, args []string) error {
	postURL := args[0]
	if !server.ValidPostURL(postURL) {
		return fmt.Errorf("not an X post URL: %s", postURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = !noCache
	if noRobots {
		cfg.Gather.RespectRobots = false
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if primaryName != "" {
		cfg.Primary.Provider = primaryName
		cfg.Primary.KeyEnv = keyEnvFor(primaryName)
		cfg.Primary.APIKey = ""
		if primaryName != "xai" && primaryName != "grok" {
			// The default base URL points at api.x.ai
			cfg.Primary.BaseURL = ""
		}
		resolveAPIKey(&cfg.Primary)
	}
	if primaryModel != "" {
		cfg.Primary.Model = primaryModel
	}

	checker, err := pipeline.NewChecker(ctx, cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", postURL)
		fmt.Fprintf(os.Stderr, "Primary: %s/%s\n", cfg.Primary.Provider, cfg.Primary.Model)
		fmt.Fprintf(os.Stderr, "Secondary enabled: %v\n", checker.SecondaryEnabled())
		fmt.Fprintln(os.Stderr)
	}

	report, err := checker.CheckURL(ctx, postURL)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if outJSON != "" {
		if err := os.WriteFile(outJSON, data, 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Report written to %s\n", outJSON)
	} else {
		fmt.Println(string(data))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\nTweet: %s\n", report.TweetText)
	}

	return nil
}

// keyEnvFor maps a provider name to its conventional API key variable
func keyEnvFor(provider string) string {
	switch provider {
	case "xai", "grok":
		return "XAI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "gemini", "google":
		return "GEMINI_API_KEY"
	case "anthropic", "claude":
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}
