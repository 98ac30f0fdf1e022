package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alanpramil7/ytetl/internal/logging"
	"github.com/alanpramil7/ytetl/internal/pipeline"
	"github.com/alanpramil7/ytetl/internal/sink"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one extract and load cycle",
	Long: `Run extracts every configured keyword and loads the ranked videos into
S3 (as <prefix>_<keyword>_videos.csv) and MongoDB (one collection per keyword).

A failed run is repeated up to --retries times, waiting --retry-delay between
attempts. Quota, credential and malformed-response failures are not repeated.

Examples:
  ytetl run
  ytetl run --keywords "Machine Learning,Devops" --retries 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner, closeSinks, err := newRunner(ctx)
		if err != nil {
			return err
		}
		defer closeSinks()

		summary, err := pipeline.RunWithRetry(ctx, runner, retryPolicy())
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "run %s loaded %d videos for %d keywords in %s\n",
			summary.RunID, summary.Records, summary.Keywords, summary.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func retryPolicy() pipeline.RetryPolicy {
	return pipeline.RetryPolicy{Retries: cfg.Retries, Delay: cfg.RetryDelay}
}

// newRunner wires the YouTube extractor to the S3 and MongoDB sinks. The returned
// func releases the sink connections.
func newRunner(ctx context.Context) (*pipeline.Runner, func(), error) {
	if err := cfg.RequireSinks(); err != nil {
		return nil, nil, err
	}

	extractor, err := newExtractor(ctx)
	if err != nil {
		return nil, nil, err
	}

	objects, err := sink.NewMinioStore(sink.MinioConfig{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		UseSSL:          cfg.S3UseSSL,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating object store client: %w", err)
	}

	docs, err := sink.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to document store: %w", err)
	}
	closeSinks := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := docs.Close(closeCtx); err != nil {
			logger.Warn("closing document store", "error", err)
		}
	}

	sinks := []sink.Sink{
		sink.NewObjectStoreSink(objects, cfg.S3Bucket, cfg.S3KeyPrefix, logging.WithComponent(logger, "objectstore")),
		sink.NewDocumentStoreSink(docs, logging.WithComponent(logger, "docstore")),
	}

	runner, err := pipeline.NewRunner(extractor, sinks, cfg.Keywords, cfg.MaxPages, logger)
	if err != nil {
		closeSinks()
		return nil, nil, err
	}
	return runner, closeSinks, nil
}
