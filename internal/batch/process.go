package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/fxforge/internal/convert"
)

// RequestFile is the on-disk form of one conversion request.
type RequestFile struct {
	Source  string  `yaml:"source"`
	Target  string  `yaml:"target"`
	Amount  float64 `yaml:"amount"`
	RateMin float64 `yaml:"rate_min"`
	RateMax float64 `yaml:"rate_max"`
}

// ResultFile records the outcome next to the moved request file.
type ResultFile struct {
	Source    string    `yaml:"source"`
	Target    string    `yaml:"target"`
	Amount    float64   `yaml:"amount"`
	TaskID    string    `yaml:"task_id,omitempty"`
	Rate      float64   `yaml:"rate,omitempty"`
	Converted float64   `yaml:"converted,omitempty"`
	Error     string    `yaml:"error,omitempty"`
	EndedAt   time.Time `yaml:"ended_at"`
}

// LoadRequest reads and validates a request file into a conversion request.
func LoadRequest(path string) (convert.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return convert.Request{}, fmt.Errorf("read request: %w", err)
	}

	var rf RequestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return convert.Request{}, fmt.Errorf("parse request %s: %w", filepath.Base(path), err)
	}

	req := convert.Request{
		Source:  rf.Source,
		Target:  rf.Target,
		Amount:  rf.Amount,
		RateMin: rf.RateMin,
		RateMax: rf.RateMax,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return convert.Request{}, err
	}
	return req, nil
}

// process runs one request file through the pipeline and moves it to
// done/ or failed/ with a result file beside it. A failed conversion
// never stops the watcher.
func (w *Watcher) process(ctx context.Context, path string) {
	if !w.claim(path) {
		return
	}
	defer w.release(path)

	name := filepath.Base(path)
	if _, err := os.Stat(path); err != nil {
		return // already moved by an earlier event
	}

	slog.Info("processing request", "file", name)

	req, err := LoadRequest(path)
	if err != nil {
		slog.Error("invalid request", "file", name, "error", err)
		w.finish(path, ResultFile{Error: err.Error(), EndedAt: time.Now().UTC()}, false)
		return
	}

	rf := ResultFile{Source: req.Source, Target: req.Target, Amount: req.Amount}
	res, err := w.cfg.RunFn(ctx, req)
	rf.EndedAt = time.Now().UTC()
	if err != nil {
		slog.Error("conversion failed", "file", name, "error", err)
		rf.Error = err.Error()
		w.finish(path, rf, false)
		return
	}

	rf.TaskID = res.TaskID
	rf.Rate = res.Rate
	rf.Converted = res.Converted
	slog.Info("conversion done", "file", name, "rate", res.Rate, "converted", res.Converted)
	w.finish(path, rf, true)
}

// finish moves the request file and writes the result file.
func (w *Watcher) finish(path string, rf ResultFile, ok bool) {
	destDir := w.failedDir
	if ok {
		destDir = w.doneDir
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		slog.Error("ensure dir", "dir", destDir, "error", err)
		return
	}

	name := filepath.Base(path)
	if err := os.Rename(path, filepath.Join(destDir, name)); err != nil {
		slog.Error("move request", "file", name, "error", err)
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return
	}
	resultPath := filepath.Join(destDir, name+".result.yml")
	if err := os.WriteFile(resultPath, data, 0o644); err != nil {
		slog.Error("write result", "file", name, "error", err)
	}
}
