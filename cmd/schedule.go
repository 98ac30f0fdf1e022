package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alanpramil7/ytetl/internal/config"
	"github.com/alanpramil7/ytetl/internal/pipeline"
	"github.com/alanpramil7/ytetl/internal/scheduler"
)

var scheduleFlag string

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the extract and load cycle on a cron schedule",
	Long: `Schedule keeps running and triggers a full run on every tick of the cron
expression (default @daily). A tick is skipped while the previous run is still
in progress. Stop with Ctrl+C or SIGTERM; an in-flight run is allowed to finish.

Examples:
  ytetl schedule
  ytetl schedule --schedule "0 3 * * *"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("schedule") {
			cfg.Schedule = scheduleFlag
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner, closeSinks, err := newRunner(ctx)
		if err != nil {
			return err
		}
		defer closeSinks()

		policy := retryPolicy()
		s, err := scheduler.New(cfg.Schedule, func(jobCtx context.Context) error {
			_, err := pipeline.RunWithRetry(jobCtx, runner, policy)
			return err
		}, logger)
		if err != nil {
			return err
		}
		return s.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().StringVar(&scheduleFlag, "schedule", "", "Cron expression or descriptor (overrides "+config.EnvSchedule+")")
}
