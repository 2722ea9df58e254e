package compute

import "fmt"

// StatusError is a non-2xx response from the compute API.
// The body is kept verbatim for diagnostics; it is never parsed.
type StatusError struct {
	Op   string // "submit task", "query status", ...
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: http %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Op, e.Code, e.Body)
}

// AbandonedError indicates the remote task reached Cancelled or Stopped.
// Callers should map this to exit code 3.
type AbandonedError struct {
	TaskID string
	Status TaskStatus
}

func (e *AbandonedError) Error() string {
	return fmt.Sprintf("task %s abandoned by remote service: %s", e.TaskID, e.Status)
}

// DeadlineError indicates the poller gave up after its configured
// maximum number of status queries without observing a terminal status.
type DeadlineError struct {
	TaskID   string
	Attempts int
	Last     TaskStatus
}

func (e *DeadlineError) Error() string {
	return fmt.Sprintf("task %s still %s after %d status queries", e.TaskID, e.Last, e.Attempts)
}
