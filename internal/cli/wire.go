package cli

import (
	"github.com/ppiankov/fxforge/internal/compute"
	"github.com/ppiankov/fxforge/internal/config"
	"github.com/ppiankov/fxforge/internal/history"
)

// buildClient constructs the compute client from settings, resolving the
// API key once before any remote call.
func buildClient(cfg *config.Settings) (*compute.Client, error) {
	key, err := config.ResolveAPIKey(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	return compute.New(compute.Config{
		BaseURL:           config.ResolveBaseURL(cfg.BaseURL),
		APIKey:            key,
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
}

// buildPoller constructs a status poller with settings-driven timing.
func buildPoller(client *compute.Client, cfg *config.Settings, onPoll func(int, compute.TaskStatus)) *compute.Poller {
	return &compute.Poller{
		Client:      client,
		Interval:    cfg.PollInterval,
		MaxAttempts: cfg.PollMaxAttempts,
		OnPoll:      onPoll,
	}
}

// openHistory opens the conversion history store under the configured
// data directory.
func openHistory(cfg *config.Settings) (*history.Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		var err error
		dataDir, err = config.DefaultDataDir()
		if err != nil {
			return nil, err
		}
	}
	return history.Open(dataDir)
}
