package compute

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval is the nominal spacing between status queries.
const DefaultPollInterval = 2 * time.Second

// Poller repeatedly queries a task's status until it reaches a terminal
// state. The wait between queries is cancellable via context.
type Poller struct {
	Client   *Client
	Interval time.Duration

	// MaxAttempts bounds the number of status queries. Zero means
	// unbounded: the loop runs until the service reaches a terminal
	// status or ctx is cancelled.
	MaxAttempts int

	// OnPoll, when set, is invoked after each non-terminal observation.
	OnPoll func(attempt int, status TaskStatus)
}

// Wait blocks until the task reaches a terminal status.
// Completed returns nil; Cancelled or Stopped returns *AbandonedError.
// A failed status query is fatal immediately — there is no distinction
// between "task failed" and "poller failed to ask".
func (p *Poller) Wait(ctx context.Context, taskID string) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var last TaskStatus
	for attempt := 1; ; attempt++ {
		status, err := p.Client.Status(ctx, taskID)
		if err != nil {
			return err
		}
		last = status

		switch {
		case status == StatusCompleted:
			return nil
		case status.Abandoned():
			return &AbandonedError{TaskID: taskID, Status: status}
		}

		slog.Debug("task not terminal", "task_id", taskID, "status", status, "attempt", attempt)
		if p.OnPoll != nil {
			p.OnPoll(attempt, status)
		}

		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return &DeadlineError{TaskID: taskID, Attempts: attempt, Last: last}
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
