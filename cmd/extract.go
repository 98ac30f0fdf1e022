package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alanpramil7/ytetl/internal/config"
	"github.com/alanpramil7/ytetl/internal/sink"
)

var format string

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [keyword...]",
	Short: "Extract ranked videos and print them without loading",
	Long: `Extract runs only the extract step and writes the ranked records to stdout.
Keywords given as arguments replace the configured keyword list.

Examples:
  ytetl extract "golang tutorial"
  ytetl extract "Devops" "Data Science" --max-pages 1 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := cfg.Keywords
		if len(args) > 0 {
			keywords = nil
			for _, a := range args {
				keywords = append(keywords, config.ParseKeywords(a)...)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out, err := sink.NewWriterSink(cmd.OutOrStdout(), format)
		if err != nil {
			return err
		}

		extractor, err := newExtractor(ctx)
		if err != nil {
			return err
		}

		result, err := extractor.Extract(ctx, keywords, cfg.MaxPages)
		if err != nil {
			return err
		}
		return out.Write(ctx, result)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&format, "format", "f", sink.FormatCSV, "Output format (csv, json)")
}
