// Package proc runs the external Java tools and captures their output.
package proc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// JavaToolOptions forces UTF-8 source and output encoding in every JVM the
// runners start.
const JavaToolOptions = "JAVA_TOOL_OPTIONS=-Dfile.encoding=UTF-8"

// Command is one process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // appended to the current environment
}

// String renders the command line as written to transcripts.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result holds what a finished process printed and how it exited.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r Result) Success() bool { return r.ExitCode == 0 }

// Runner executes a command. A non-zero exit is reported through Result;
// the error is reserved for processes that could not run at all.
type Runner func(ctx context.Context, cmd Command) (Result, error)

// Exec is the Runner backed by os/exec.
func Exec(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, err
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}
