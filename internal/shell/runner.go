package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result holds the outcome of one external command invocation.
// Lines contains stdout split into lines even when the command exited
// non-zero, so callers can reason about partial output.
type Result struct {
	// Lines is stdout split on newlines, with a trailing empty line removed.
	Lines []string
	// ExitCode is the process exit code; -1 when the process could not run.
	ExitCode int
	// Err is the underlying execution error, if any. A non-zero exit with
	// usable output leaves Err nil.
	Err error
}

// Ok reports whether the command ran and exited zero.
func (r Result) Ok() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Output returns stdout re-joined into a single trimmed string.
func (r Result) Output() string {
	return strings.TrimSpace(strings.Join(r.Lines, "\n"))
}

// Runner executes external commands.
type Runner interface {
	// Run executes name with args as separate argv tokens. No shell is
	// involved; args may safely contain untrusted substrings.
	Run(name string, args ...string) Result

	// RunShell executes a fixed literal command line via /bin/sh -c.
	// Callers must never interpolate untrusted data into line.
	RunShell(line string) Result
}

// ExecRunner runs commands via os/exec with a per-command timeout.
type ExecRunner struct {
	// Timeout bounds each command; zero means DefaultTimeout.
	Timeout time.Duration

	logger *zap.Logger
}

// DefaultTimeout bounds a single external command. nmcli connect attempts
// can take tens of seconds on a bad link.
const DefaultTimeout = 90 * time.Second

// NewExecRunner creates an ExecRunner logging through the given logger.
func NewExecRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

func (e *ExecRunner) timeout() time.Duration {
	if e.Timeout > 0 {
		return e.Timeout
	}
	return DefaultTimeout
}

// Run implements Runner.
func (e *ExecRunner) Run(name string, args ...string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout())
	defer cancel()
	return e.exec(exec.CommandContext(ctx, name, args...))
}

// RunShell implements Runner.
func (e *ExecRunner) RunShell(line string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout())
	defer cancel()
	return e.exec(exec.CommandContext(ctx, "/bin/sh", "-c", line))
}

func (e *ExecRunner) exec(cmd *exec.Cmd) Result {
	start := time.Now()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
			// Non-zero exit is an ordinary outcome for the callers here;
			// keep the output and report only the code.
			err = nil
		} else {
			// Command failed to start (not found, permission, timeout).
			exitCode = -1
		}
	}

	res := Result{
		Lines:    splitLines(stdout.String()),
		ExitCode: exitCode,
		Err:      err,
	}

	e.logger.Debug("command complete",
		zap.Strings("argv", cmd.Args),
		zap.Duration("duration", duration),
		zap.Int("exit_code", res.ExitCode),
		zap.Int("stdout_lines", len(res.Lines)),
		zap.String("stderr", strings.TrimSpace(stderr.String())),
		zap.Error(err),
	)

	return res
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
