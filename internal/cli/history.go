package cli

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/ppiankov/fxforge/internal/config"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded conversions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return showHistory(cfg, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max entries to show (0 = all)")

	return cmd
}

func showHistory(cfg *config.Settings, limit int) error {
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	conversions, err := store.List(limit)
	if err != nil {
		return err
	}
	if len(conversions) == 0 {
		fmt.Println("no conversions recorded yet")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("When", "From", "To", "Amount", "Rate", "Converted", "Task")

	for _, c := range conversions {
		_ = table.Append(
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
			c.Source,
			c.Target,
			fmt.Sprintf("%.2f", c.Amount),
			fmt.Sprintf("%g", c.Rate),
			fmt.Sprintf("%.2f", c.Converted),
			c.TaskID,
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	return nil
}
