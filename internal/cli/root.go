package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/maarifplan/internal/model"
)

// version is overridden at build time with -ldflags
var version = "v0.1.0"

var (
	cfgFile     string
	verbose     bool
	logMode     string
	outputDir   string
	llmProvider string
	llmModel    string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "maarifplan",
	Short: "Maarifplan - curriculum-grounded activity and plan generation",
	Long: `Maarifplan builds early-childhood activities, daily plans and monthly
plans from learning outcomes of the Türkiye Yüzyılı Maarif Modeli.

The curriculum of every document is extracted from the selected outcomes,
sent to a text-generation model, and reconciled afterwards: whatever the
model returns, the stored curriculum comes from the teacher's overrides or
from the outcomes themselves. Damaged responses are repaired, and missing
narrative sections fall back to neutral defaults.

The video command writes a narrated topic-explanation script for the same
outcomes.`,
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
	Long:  `Display the version number of maarifplan.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("maarifplan %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.maarifplan/config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&logMode, "log", "", "log mode: dev, prod or off")
	flags.StringVarP(&outputDir, "output-dir", "o", "", "output directory for generated documents")
	flags.StringVar(&llmProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	flags.StringVar(&llmModel, "model", "", "LLM model name")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("log.mode", flags.Lookup("log"))
	_ = viper.BindPFlag("output.dir", flags.Lookup("output-dir"))
	_ = viper.BindPFlag("llm.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("llm.model", flags.Lookup("model"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".maarifplan"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MAARIFPLAN_*
	viper.SetEnvPrefix("MAARIFPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so that environment variables and
// Unmarshal see the full tree
func setDefaults(cfg *model.Config) {
	viper.SetDefault("llm.provider", cfg.LLM.Provider)
	viper.SetDefault("llm.model", cfg.LLM.Model)
	viper.SetDefault("llm.api_key", cfg.LLM.APIKey)
	viper.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	viper.SetDefault("llm.timeout", cfg.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", cfg.LLM.MaxTokens)
	viper.SetDefault("llm.temperature", cfg.LLM.Temperature)
	viper.SetDefault("llm.top_p", cfg.LLM.TopP)
	viper.SetDefault("llm.handles", cfg.LLM.Handles)
	viper.SetDefault("llm.http_proxy", cfg.LLM.HTTPProxy)
	viper.SetDefault("llm.https_proxy", cfg.LLM.HTTPSProxy)
	viper.SetDefault("llm.no_proxy", cfg.LLM.NoProxy)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.dir", cfg.Cache.Dir)
	viper.SetDefault("cache.memory_ttl", cfg.Cache.MemoryTTL)
	viper.SetDefault("cache.disk_ttl", cfg.Cache.DiskTTL)

	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("rate_limiting.requests_per_second", cfg.RateLimiting.RequestsPerSecond)
	viper.SetDefault("rate_limiting.burst_size", cfg.RateLimiting.BurstSize)

	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.verbose", cfg.Output.Verbose)
	viper.SetDefault("log.mode", cfg.Log.Mode)
}

// loadConfig resolves flags, environment, config file and defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return cfg, nil
}
