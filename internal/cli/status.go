package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ppiankov/fxforge/internal/compute"
	"github.com/ppiankov/fxforge/internal/config"
)

func newStatusCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status <task-id>",
		Short: "Query the status of a submitted task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return showTaskStatus(args[0], cfg, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "poll until the task reaches a terminal status")

	return cmd
}

func showTaskStatus(taskID string, cfg *config.Settings, watch bool) error {
	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if !watch {
		status, err := client.Status(ctx, taskID)
		if err != nil {
			return err
		}
		printStatus(taskID, status)
		return nil
	}

	poller := buildPoller(client, cfg, func(attempt int, status compute.TaskStatus) {
		printStatus(taskID, status)
	})

	err = poller.Wait(ctx, taskID)
	var abandoned *compute.AbandonedError
	switch {
	case err == nil:
		printStatus(taskID, compute.StatusCompleted)
		return nil
	case errors.As(err, &abandoned):
		printStatus(taskID, abandoned.Status)
		return err
	default:
		return err
	}
}

func printStatus(taskID string, status compute.TaskStatus) {
	fmt.Printf("%s  %s\n", taskID, statusStyle(string(status)).Render(string(status)))
}
