package gemini

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// Command describes one process to run.
type Command struct {
	Name  string
	Args  []string
	Env   []string  // full child environment; nil inherits the parent's
	Stdin io.Reader // nil leaves stdin untouched
}

// Outcome is what a finished process left behind.
type Outcome struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs a command to completion.
// A nonzero exit is reported through Outcome.ExitCode, not as an error;
// the error is reserved for processes that could not be started or read.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Outcome, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, command Command) (Outcome, error) {
	cmd := exec.CommandContext(ctx, command.Name, command.Args...)
	cmd.Env = command.Env
	if command.Stdin != nil {
		cmd.Stdin = command.Stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	outcome := Outcome{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err == nil {
		return outcome, nil
	}

	// The process ran and exited nonzero.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		outcome.ExitCode = exitErr.ExitCode()
		return outcome, nil
	}

	if ctx.Err() != nil {
		return outcome, ctx.Err()
	}
	return outcome, err
}
