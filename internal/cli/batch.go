package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ppiankov/fxforge/internal/batch"
	"github.com/ppiankov/fxforge/internal/compute"
	"github.com/ppiankov/fxforge/internal/config"
	"github.com/ppiankov/fxforge/internal/convert"
)

func newBatchCmd() *cobra.Command {
	var (
		dir       string
		workers   int
		pollMode  bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run conversions from request files dropped into a directory",
		Long:  "batch watches a directory for YAML conversion request files, runs each through the remote compute service, and moves them to done/ or failed/ with a result file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runBatch(dir, workers, pollMode, noHistory, cfg)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "drop directory with request files")
	cmd.Flags().IntVar(&workers, "workers", 2, "max request files processed in parallel")
	cmd.Flags().BoolVar(&pollMode, "poll", false, "use polling instead of fsnotify")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record conversions locally")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func runBatch(dir string, workers int, pollMode, noHistory bool, cfg *config.Settings) error {
	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	runFn := func(ctx context.Context, req convert.Request) (convert.Result, error) {
		runner := &convert.Runner{
			API:    client,
			Waiter: buildPoller(client, cfg, func(int, compute.TaskStatus) {}),
			Parser: convert.StdoutParser{},
		}
		res, err := runner.Run(ctx, req)
		if err != nil {
			return convert.Result{}, err
		}
		if !noHistory {
			recordConversion(cfg, req, res)
		}
		return res, nil
	}

	w, err := batch.New(batch.Config{
		Dir:      dir,
		Workers:  workers,
		PollMode: pollMode,
		RunFn:    runFn,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return w.Run(ctx)
}
