package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const defaultTaskTimeout = 5 * time.Minute

// Runner executes tasks one at a time on the calling goroutine.
type Runner struct {
	timeout time.Duration
}

func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &Runner{timeout: timeout}
}

func (r *Runner) Run(ctx context.Context, task TaskInterface) error {
	task.Start()

	taskCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	slog.Debug("Task started", "type", string(task.GetType()), "id", task.GetID(), "section", task.GetSection())

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "duration", task.GetDuration(), "error", err)
		return fmt.Errorf("task %s failed: %w", task.GetType(), err)
	}

	return nil
}
