package system

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

// Result holds the outcome of a command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// CommandRunner defines an interface for running system commands.
type CommandRunner interface {
	Run(name string, args ...string) (Result, error)
}

// ExecCommandRunner executes commands using os/exec.
type ExecCommandRunner struct{}

// NewCommandRunner returns a default command runner implementation.
func NewCommandRunner() CommandRunner {
	return &ExecCommandRunner{}
}

// Run executes a command and returns its captured output. A non-zero exit
// still returns a populated Result; err is non-nil both for non-zero exits
// and for failures to start the command at all.
func (r *ExecCommandRunner) Run(name string, args ...string) (Result, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		return result, err
	}

	return result, nil
}

// CommandLine formats a command and its arguments for log output.
func CommandLine(name string, args ...string) string {
	return name + " " + strings.Join(args, " ")
}
