package convert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/fxforge/internal/compute"
)

// TaskAPI is the slice of the compute client the pipeline needs.
type TaskAPI interface {
	Submit(ctx context.Context, code, args string) (string, error)
	Outputs(ctx context.Context, id string) (compute.Outputs, error)
	FetchArtifact(ctx context.Context, url string) (string, error)
}

// TaskWaiter blocks until a task reaches a terminal status.
type TaskWaiter interface {
	Wait(ctx context.Context, taskID string) error
}

// Runner chains the three task-lifecycle operations: submit, poll until
// terminal, fetch and parse output. Exactly one task per Run call; the
// calls never overlap.
type Runner struct {
	API    TaskAPI
	Waiter TaskWaiter
	Parser OutputParser
}

// Run executes one conversion end to end. The request must already be
// normalized and validated. Every failure path returns a typed error;
// no partial result is ever produced.
func (rn *Runner) Run(ctx context.Context, req Request) (Result, error) {
	taskID, err := rn.API.Submit(ctx, Program, req.Args())
	if err != nil {
		return Result{}, err
	}

	if err := rn.Waiter.Wait(ctx, taskID); err != nil {
		return Result{}, err
	}

	outputs, err := rn.API.Outputs(ctx, taskID)
	if err != nil {
		return Result{}, err
	}
	if outputs.Stdout == "" {
		// No artifact reference is an unrecoverable error, not an
		// empty result; fail before any download attempt.
		return Result{}, &ParseError{Missing: "stdout artifact"}
	}

	raw, err := rn.API.FetchArtifact(ctx, outputs.Stdout)
	if err != nil {
		return Result{}, err
	}

	rate, converted, err := rn.Parser.Parse(raw)
	if err != nil {
		return Result{}, err
	}

	slog.Debug("output extracted", "task_id", taskID, "rate", rate, "converted", converted)
	return Result{TaskID: taskID, Rate: rate, Converted: converted}, nil
}

// Format renders the final printed conversion: amount at two decimal
// places followed by the target currency code.
func (res Result) Format(target string) string {
	return fmt.Sprintf("%.2f %s", res.Converted, target)
}
