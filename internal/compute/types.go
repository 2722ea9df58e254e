package compute

// TaskStatus is the remote service's view of a task's lifecycle.
type TaskStatus string

const (
	StatusQueued     TaskStatus = "Queued"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
	StatusCancelled  TaskStatus = "Cancelled"
	StatusStopped    TaskStatus = "Stopped"
)

// Terminal reports whether no further transition can occur.
// Unknown statuses are treated as non-terminal: the service may add
// intermediate states and the poller must keep polling through them.
func (s TaskStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusStopped:
		return true
	}
	return false
}

// Abandoned reports whether the task ended without producing output.
func (s TaskStatus) Abandoned() bool {
	return s == StatusCancelled || s == StatusStopped
}

// sourcePayload is the inner body of a one-shot code-execution task.
type sourcePayload struct {
	Object    string `json:"Object"`
	Code      string `json:"Code"`
	Arguments string `json:"Arguments"`
	Language  string `json:"Language"`
}

// submitRequest is the POST /tasks body.
type submitRequest struct {
	Type       string        `json:"Type"`
	SourceCode sourcePayload `json:"SourceCode"`
}

// submitResponse is the POST /tasks response.
type submitResponse struct {
	TaskID string `json:"TaskID"`
}

// statusResponse is the GET /tasks/{id} response.
type statusResponse struct {
	Status TaskStatus `json:"Status"`
}

// Outputs is the GET /tasks/{id}/outputs response. Stdout, when present,
// is a URL to a separately hosted text artifact.
type Outputs struct {
	Stdout string `json:"Stdout,omitempty"`
}
