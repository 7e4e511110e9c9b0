// Package runner executes OS introspection commands and captures their
// output as text.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner runs a command and returns its captured stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Exec runs commands with os/exec.
type Exec struct {
	Logger *slog.Logger
}

// NewExec creates an exec-backed runner. A nil logger uses slog.Default.
func NewExec(logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exec{Logger: logger}
}

func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.Logger.Debug("running command", "cmd", name, "args", args)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if exitErr, ok := err.(*exec.ExitError); ok {
			return stdout.String(), fmt.Errorf("%s exited %d: %s", name, exitErr.ExitCode(), msg)
		}
		return "", fmt.Errorf("running %s: %w", name, err)
	}
	return stdout.String(), nil
}

// Output runs a command and degrades any failure to empty output, logging
// it at warn level. Callers treat missing output as missing data.
func Output(ctx context.Context, r Runner, name string, args ...string) string {
	out, err := r.Run(ctx, name, args...)
	if err != nil {
		slog.Warn("command failed", "cmd", name, "args", args, "error", err)
		return ""
	}
	return out
}
