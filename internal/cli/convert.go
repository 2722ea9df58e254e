package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ppiankov/fxforge/internal/compute"
	"github.com/ppiankov/fxforge/internal/config"
	"github.com/ppiankov/fxforge/internal/convert"
	"github.com/ppiankov/fxforge/internal/history"
)

func newConvertCmd() *cobra.Command {
	var (
		req       convert.Request
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an amount between currencies at an uncertain rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Normalize()
			if err := req.Validate(); err != nil {
				return err
			}

			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return runConvert(req, cfg, noHistory)
		},
	}

	cmd.Flags().StringVar(&req.Source, "from", "", "source currency code (e.g. USD)")
	cmd.Flags().StringVar(&req.Target, "to", "", "target currency code (e.g. EUR)")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "amount to convert")
	cmd.Flags().Float64Var(&req.RateMin, "rate-min", 0, "lower bound of the uncertain rate")
	cmd.Flags().Float64Var(&req.RateMax, "rate-max", 0, "upper bound of the uncertain rate")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record the conversion locally")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("rate-min")
	_ = cmd.MarkFlagRequired("rate-max")

	return cmd
}

func runConvert(req convert.Request, cfg *config.Settings, noHistory bool) error {
	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Spinner feedback while polling, TTY only.
	var bar *progressbar.ProgressBar
	onPoll := func(attempt int, status compute.TaskStatus) {}
	if isTerminal() {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("waiting for task"),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWriter(os.Stderr),
		)
		onPoll = func(attempt int, status compute.TaskStatus) {
			bar.Describe(fmt.Sprintf("waiting for task (%s)", status))
			_ = bar.Add(1)
		}
	}

	runner := &convert.Runner{
		API:    client,
		Waiter: buildPoller(client, cfg, onPoll),
		Parser: convert.StdoutParser{},
	}

	res, err := runner.Run(ctx, req)
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	if !noHistory {
		recordConversion(cfg, req, res)
	}

	fmt.Println(resultStyle.Render(res.Format(req.Target)))
	fmt.Println(dimStyle.Render(fmt.Sprintf("rate %g (%s→%s, task %s)", res.Rate, req.Source, req.Target, res.TaskID)))
	return nil
}

// recordConversion appends to local history. The conversion already
// succeeded, so storage failures are logged, never fatal.
func recordConversion(cfg *config.Settings, req convert.Request, res convert.Result) {
	store, err := openHistory(cfg)
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	err = store.Record(history.Conversion{
		TaskID:    res.TaskID,
		Source:    req.Source,
		Target:    req.Target,
		Amount:    req.Amount,
		Rate:      res.Rate,
		Converted: res.Converted,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("record history", "error", err)
	}
}
