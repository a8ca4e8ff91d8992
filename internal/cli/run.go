package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/adaptor"
	"github.com/aretw0/adaptor/internal/logging"
	"github.com/aretw0/adaptor/pkg/domain"
	"github.com/aretw0/adaptor/pkg/httpclient"
	"github.com/aretw0/adaptor/pkg/job"
	"github.com/aretw0/adaptor/pkg/observability"
	"github.com/aretw0/adaptor/pkg/ports"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	JobPath     string
	StatePath   string
	OutPath     string
	MetricsPath string
	Timeout     time.Duration
	// LogLevel is one of debug, info, warn or error. Debug overrides it.
	LogLevel string
	Debug    bool

	// Store receives the completed run. Nil skips persistence.
	Store ports.RunStore
	// Stdout receives the final state as JSON. Defaults to os.Stdout.
	Stdout io.Writer
	Logger *slog.Logger
}

// Run loads a job and its initial state, executes it and reports the final
// state. Nothing is written or stored when the job fails.
func Run(ctx context.Context, opts RunOptions) (*domain.Run, error) {
	logger := opts.Logger
	if logger == nil {
		level, err := logging.ParseLevel(opts.LogLevel)
		if err != nil {
			return nil, err
		}
		if opts.Debug {
			level = slog.LevelDebug
		}
		logger = logging.New(level)
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	j, err := job.Load(opts.JobPath)
	if err != nil {
		return nil, err
	}
	initial := domain.NewState()
	if opts.StatePath != "" {
		if initial, err = job.LoadState(opts.StatePath); err != nil {
			return nil, err
		}
	}

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)
	hooks := []httpclient.Hooks{metrics.Hooks()}
	if opts.Debug {
		hooks = append(hooks, debugHooks(logger))
	}

	a := adaptor.New(
		adaptor.WithLogger(logger),
		adaptor.WithTimeout(opts.Timeout),
		adaptor.WithHooks(httpclient.MultiHooks(hooks...)),
	)
	op, err := job.Operation(j, a)
	if err != nil {
		return nil, err
	}

	logger.Info("running job", "job", j.Name, "operations", len(j.Steps))
	start := time.Now()
	final, err := op(ctx, initial)
	if opts.MetricsPath != "" {
		if werr := prometheus.WriteToTextfile(opts.MetricsPath, registry); werr != nil {
			logger.Warn("failed to write metrics", "path", opts.MetricsPath, "err", werr)
		}
	}
	if err != nil {
		logger.Error("job failed", "job", j.Name, "duration", time.Since(start), "err", err)
		return nil, fmt.Errorf("job %s: %w", j.Name, err)
	}

	run := &domain.Run{
		ID:        uuid.NewString(),
		Job:       j.Name,
		CreatedAt: time.Now().UTC(),
		State:     final,
	}
	logger.Info("job completed", "job", j.Name, "run_id", run.ID, "duration", time.Since(start))

	data, err := json.MarshalIndent(final, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	if _, err := fmt.Fprintln(stdout, string(data)); err != nil {
		return nil, err
	}
	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, append(data, '\n'), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", opts.OutPath, err)
		}
	}

	if opts.Store != nil {
		if err := opts.Store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
	}
	return run, nil
}

func debugHooks(logger *slog.Logger) httpclient.Hooks {
	return httpclient.Hooks{
		OnRequest: func(ctx context.Context, req httpclient.Request) {
			logger.Debug("Request", "url", req.URL, "auth", req.Auth != nil)
		},
		OnResponse: func(ctx context.Context, ev httpclient.ResponseEvent) {
			if ev.Err != nil {
				logger.Debug("Response (Error)", "url", ev.Request.URL, "err", ev.Err)
				return
			}
			logger.Debug("Response", "url", ev.Request.URL, "status", ev.Response.StatusCode, "duration", ev.Duration)
		},
	}
}
