package cargo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/jguhlin/burn/xtask/pkg"
)

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Env is added on top of the current process environment.
	Env map[string]string
	Dir string
}

// Line renders the command as a shell-quoted line.
func (c Command) Line() (string, error) {
	parts := make([]string, 0, len(c.Args)+1)
	for _, word := range append([]string{c.Name}, c.Args...) {
		quoted, err := syntax.Quote(word, syntax.LangBash)
		if err != nil {
			return "", eris.Wrapf(err, "Failed to quote argument %q", word)
		}
		parts = append(parts, quoted)
	}

	return strings.Join(parts, " "), nil
}

func (c Command) String() string {
	line, err := c.Line()
	if err != nil {
		return fmt.Sprintf("%s %q", c.Name, c.Args)
	}
	return line
}

// Executor runs external commands. Run streams output to the terminal, Output captures stdout.
type Executor interface {
	Run(ctx context.Context, cmd Command) error
	Output(ctx context.Context, cmd Command) (string, error)
}

// ShellExecutor runs commands through the mvdan.cc/sh interpreter so that they behave the same
// on every platform.
type ShellExecutor struct {
	DryRun bool
	Stdout io.Writer
	Stderr io.Writer
}

func NewShellExecutor(dryRun bool) *ShellExecutor {
	return &ShellExecutor{
		DryRun: dryRun,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// IsDryRun reports whether commands are only logged.
func (e *ShellExecutor) IsDryRun() bool {
	return e.DryRun
}

func (e *ShellExecutor) Run(ctx context.Context, cmd Command) error {
	return e.execute(ctx, cmd, e.Stdout)
}

func (e *ShellExecutor) Output(ctx context.Context, cmd Command) (string, error) {
	var buffer bytes.Buffer
	err := e.execute(ctx, cmd, &buffer)
	return buffer.String(), err
}

func (e *ShellExecutor) execute(ctx context.Context, cmd Command, stdout io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := cmd.Line()
	if err != nil {
		return err
	}

	pkg.Log(ctx).Info().
		Bool("command", true).
		Str("path", cmd.Dir).
		Msg(line)

	if e.DryRun {
		return nil
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(line), cmd.Name)
	if err != nil {
		return eris.Wrapf(err, "Failed to parse command %s", line)
	}

	options := []interp.RunnerOption{
		interp.Env(commandEnv(cmd)),
		interp.StdIO(nil, stdout, e.Stderr),
		interp.Params("-e"),
	}
	if cmd.Dir != "" {
		options = append(options, interp.Dir(cmd.Dir))
	}

	runner, err := interp.New(options...)
	if err != nil {
		return eris.Wrap(err, "Failed to initialize runner")
	}

	err = runner.Run(ctx, file)
	if err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return eris.Errorf("Command %s exited with status %d", line, status)
		}
		return eris.Wrapf(err, "Failed to run %s", line)
	}

	return nil
}

func commandEnv(cmd Command) expand.Environ {
	envVars := os.Environ()
	for name, value := range cmd.Env {
		envVars = append(envVars, fmt.Sprintf("%s=%s", name, value))
	}

	return expand.ListEnviron(envVars...)
}
