package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"clipmeta"
	"clipmeta/clipboard"
	"clipmeta/internal/logger"
)

var (
	watchOpts     outputOptions
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print records every time the clipboard changes",
	Long: `Prints the current clipboard records, then prints them again after every
clipboard change until interrupted. Bursts of changes within the debounce
window produce one report.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchOpts.addFlags(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before reporting a change (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := watchOpts.resolve(cmd, cfg); err != nil {
		return err
	}
	if !cmd.Flags().Changed("debounce") {
		watchDebounce = cfg.Watch.Debounce
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := clipboard.OpenSystem(ctx)
	if err != nil {
		return err
	}
	defer src.Close()

	return watchLoop(ctx, src, src.Changes(), watchDebounce, func() error {
		return emit(cmd, src, watchOpts)
	})
}

// watchLoop calls report once, then again after each debounced change,
// until ctx is done.
func watchLoop(ctx context.Context, src clipmeta.Source, changes <-chan struct{}, debounce time.Duration, report func() error) error {
	log := logger.Component("watch")
	if err := report(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug("watch: stopped")
			return nil
		case <-changes:
		}

		if !settle(ctx, changes, debounce) {
			return nil
		}
		log.Debug("watch: clipboard changed", "generation", src.ChangeGeneration())
		if err := report(); err != nil {
			return err
		}
	}
}

// settle waits until no change arrived for debounce. It returns false if
// ctx ended first.
func settle(ctx context.Context, changes <-chan struct{}, debounce time.Duration) bool {
	if debounce <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(debounce)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-changes:
			timer.Reset(debounce)
		case <-timer.C:
			return true
		}
	}
}
