package compute

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, APIKey: "test-key", RequestsPerSecond: 1000})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestSubmitReturnsTaskIDUnmodified(t *testing.T) {
	var gotBody submitRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("authorization: got %q, want raw key", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content-type: got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Error(err)
		}
		_ = json.NewEncoder(w).Encode(submitResponse{TaskID: "abc-123"})
	}))
	defer srv.Close()

	id, err := testClient(t, srv.URL).Submit(context.Background(), "int main(){}", "1 2 3")
	if err != nil {
		t.Fatal(err)
	}
	if id != "abc-123" {
		t.Errorf("task id: got %q, want abc-123", id)
	}
	if gotBody.Type != "SourceCode" {
		t.Errorf("type: got %q", gotBody.Type)
	}
	if gotBody.SourceCode.Object != "SourceCode" || gotBody.SourceCode.Language != "C" {
		t.Errorf("payload envelope: %+v", gotBody.SourceCode)
	}
	if gotBody.SourceCode.Code != "int main(){}" || gotBody.SourceCode.Arguments != "1 2 3" {
		t.Errorf("payload content: %+v", gotBody.SourceCode)
	}
}

func TestSubmitEmptyTaskIDIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(submitResponse{})
	}))
	defer srv.Close()

	if _, err := testClient(t, srv.URL).Submit(context.Background(), "code", ""); err == nil {
		t.Fatal("expected error for missing TaskID")
	}
}

func TestSubmitNon2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Submit(context.Background(), "code", "")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusForbidden {
		t.Errorf("code: got %d", se.Code)
	}
	if se.Op != "submit task" {
		t.Errorf("op: got %q", se.Op)
	}
}

func TestStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tasks/xyz" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(statusResponse{Status: StatusInProgress})
	}))
	defer srv.Close()

	status, err := testClient(t, srv.URL).Status(context.Background(), "xyz")
	if err != nil {
		t.Fatal(err)
	}
	if status != StatusInProgress {
		t.Errorf("status: got %q", status)
	}
}

func TestOutputsMissingStdout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	out, err := testClient(t, srv.URL).Outputs(context.Background(), "xyz")
	if err != nil {
		t.Fatal(err)
	}
	if out.Stdout != "" {
		t.Errorf("stdout: got %q, want empty", out.Stdout)
	}
}

func TestFetchArtifactNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("artifact request carries auth header %q", got)
		}
		_, _ = w.Write([]byte("raw text"))
	}))
	defer srv.Close()

	body, err := testClient(t, srv.URL).FetchArtifact(context.Background(), srv.URL+"/blob")
	if err != nil {
		t.Fatal(err)
	}
	if body != "raw text" {
		t.Errorf("body: got %q", body)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestTaskStatusPredicates(t *testing.T) {
	cases := []struct {
		status    TaskStatus
		terminal  bool
		abandoned bool
	}{
		{StatusQueued, false, false},
		{StatusInProgress, false, false},
		{StatusCompleted, true, false},
		{StatusCancelled, true, true},
		{StatusStopped, true, true},
		{TaskStatus("Provisioning"), false, false},
	}

	for _, tc := range cases {
		if got := tc.status.Terminal(); got != tc.terminal {
			t.Errorf("%s.Terminal() = %v, want %v", tc.status, got, tc.terminal)
		}
		if got := tc.status.Abandoned(); got != tc.abandoned {
			t.Errorf("%s.Abandoned() = %v, want %v", tc.status, got, tc.abandoned)
		}
	}
}
