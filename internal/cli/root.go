package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"claimlens/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Claimlens - evidence-scored verdicts for X posts",
	Long: `Claimlens takes the URL of an X post, gathers whatever public
evidence it can reach (the post text and snapshots of linked pages),
asks one or two model providers to evaluate the post's claims against
that evidence, and merges their answers into a single verdict with
per-claim findings and cited sources.

Evidence gathering is best effort: unreachable pages lower the result
quality, they never block it. The only hard dependency is the primary
model provider.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimlens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.claimlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLAIMLENS_*
	viper.SetEnvPrefix("CLAIMLENS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, then the
// config file if one was found, then API keys from the environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Output.Verbose = verbose

	resolveAPIKey(&cfg.Primary)
	resolveAPIKey(&cfg.Secondary)

	// A secondary slot whose key is absent is switched off rather than
	// reported; only the primary provider is mandatory.
	if cfg.Secondary.KeyEnv != "" && cfg.Secondary.APIKey == "" {
		if verbose && cfg.Secondary.Provider != "" {
			fmt.Fprintf(os.Stderr, "%s not set, secondary provider disabled\n", cfg.Secondary.KeyEnv)
		}
		cfg.Secondary.Provider = ""
	}

	return cfg, nil
}

func resolveAPIKey(slot *model.LLMConfig) {
	if slot.APIKey == "" && slot.KeyEnv != "" {
		slot.APIKey = os.Getenv(slot.KeyEnv)
	}
}
