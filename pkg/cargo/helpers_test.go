package cargo

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	cmds    []Command
	outputs map[string]string
	fail    func(Command) error
	dryRun  bool
}

func (r *recordingExecutor) IsDryRun() bool {
	return r.dryRun
}

func (r *recordingExecutor) Run(_ context.Context, cmd Command) error {
	r.cmds = append(r.cmds, cmd)
	if r.fail != nil {
		return r.fail(cmd)
	}
	return nil
}

func (r *recordingExecutor) Output(_ context.Context, cmd Command) (string, error) {
	r.cmds = append(r.cmds, cmd)
	return r.outputs[cmd.String()], nil
}

func (r *recordingExecutor) lines() []string {
	result := make([]string, len(r.cmds))
	for idx, cmd := range r.cmds {
		result[idx] = strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	}
	return result
}

// newTestCargo returns a Cargo with every tool "installed" and no CI progress output.
func newTestCargo(t *testing.T, root string) (*Cargo, *recordingExecutor) {
	t.Helper()

	rec := &recordingExecutor{outputs: map[string]string{}}
	c := New(rec, root)
	c.stderr = io.Discard
	c.host = linuxX86
	c.lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	c.lookupEnv = func(string) (string, bool) { return "", false }

	return c, rec
}

func missingTools(string) (string, error) {
	return "", exec.ErrNotFound
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixtureWorkspace lays out a small workspace with two crates, one example and xtask.
func fixtureWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "Cargo.toml"), `
[workspace]
members = ["crates/*", "examples/*", "xtask"]
exclude = ["examples/notebook"]

[workspace.package]
version = "0.13.2"
`)
	writeFile(t, filepath.Join(root, "crates", "burn-core", "Cargo.toml"), `
[package]
name = "burn-core"
version.workspace = true
`)
	writeFile(t, filepath.Join(root, "crates", "burn-tch", "Cargo.toml"), `
[package]
name = "burn-tch"
version = "0.13.1"
`)
	writeFile(t, filepath.Join(root, "crates", "README.md"), "not a crate\n")
	writeFile(t, filepath.Join(root, "examples", "mnist", "Cargo.toml"), `
[package]
name = "mnist"
version = "0.1.0"
`)
	writeFile(t, filepath.Join(root, "examples", "notebook", "Cargo.toml"), `
[package]
name = "notebook"
version = "0.1.0"
`)
	writeFile(t, filepath.Join(root, "xtask", "Cargo.toml"), `
[package]
name = "xtask"
version = "1.0.0"
`)

	return root
}
