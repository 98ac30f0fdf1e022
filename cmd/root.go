package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/alanpramil7/ytetl/internal/config"
	"github.com/alanpramil7/ytetl/internal/logging"
	"github.com/alanpramil7/ytetl/internal/yt"
	"github.com/alanpramil7/ytetl/internal/yt/services"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	keywordsFlag   []string
	maxPagesFlag   int
	logLevelFlag   string
	retriesFlag    int
	retryDelayFlag string

	// clientOptions are passed to every YouTube client, e.g. an alternate endpoint.
	clientOptions []option.ClientOption
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytetl",
	Short: "Extract YouTube keyword search results into S3 and MongoDB",
	Long: `ytetl searches YouTube for a set of keywords, ranks the matching videos
by engagement and loads them into an object store (one CSV per keyword)
and a document store (one collection per keyword).

Examples:
  ytetl run
  ytetl run --keywords "Devops,Data Science" --max-pages 2
  ytetl schedule --schedule "0 3 * * *"
  ytetl extract "golang tutorial" --format json
  ytetl browse`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.New()
		if err != nil {
			return err
		}
		if err := applyFlags(cmd); err != nil {
			return err
		}

		logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("ytetl %s (commit %s)\n", config.Version, config.GitCommit))

	rootCmd.PersistentFlags().StringSliceVarP(&keywordsFlag, "keywords", "k", nil, "Comma separated keywords to search (overrides "+config.EnvKeywords+")")
	rootCmd.PersistentFlags().IntVarP(&maxPagesFlag, "max-pages", "p", 0, "Maximum search pages per keyword (overrides "+config.EnvMaxPages+")")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (overrides "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().IntVar(&retriesFlag, "retries", 0, "Extra attempts after a failed run (overrides "+config.EnvRetries+")")
	rootCmd.PersistentFlags().StringVar(&retryDelayFlag, "retry-delay", "", "Wait between attempts, e.g. 5m (overrides "+config.EnvRetryDelay+")")
}

// applyFlags layers explicitly set flags over the environment configuration.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("keywords") {
		var keywords []string
		for _, k := range keywordsFlag {
			keywords = append(keywords, config.ParseKeywords(k)...)
		}
		cfg.Keywords = keywords
	}
	if flags.Changed("max-pages") {
		cfg.MaxPages = maxPagesFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	if flags.Changed("retries") {
		cfg.Retries = retriesFlag
	}
	if flags.Changed("retry-delay") {
		d, err := time.ParseDuration(retryDelayFlag)
		if err != nil {
			return fmt.Errorf("invalid --retry-delay: %w", err)
		}
		cfg.RetryDelay = d
	}
	return cfg.Validate()
}

// newExtractor builds the YouTube-backed extractor shared by every command.
func newExtractor(ctx context.Context) (services.Extractor, error) {
	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}
	client, err := yt.NewClient(ctx, cfg.YouTubeAPIKey, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating YouTube client: %w", err)
	}
	logger.Debug("youtube client ready", "api_key", logging.SanitizeToken(cfg.YouTubeAPIKey))
	return services.NewExtractor(client, logging.WithComponent(logger, "extract")), nil
}
