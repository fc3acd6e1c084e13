package xtask

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jguhlin/burn/xtask/pkg/cargo"
)

func TestHandleTest(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.DisableWgpu = true

	tc := newFakeToolchain()
	require.NoError(t, HandleTest(ctx, tc, cfg, cargo.TestCmdArgs{Target: cargo.TargetWorkspace}, Std))
	assert.Equal(t, []string{
		"Test workspace exclude=burn-cuda,burn-tch,burn-wgpu",
		"TestCrates crates=burn-dataset flags=--all-features",
	}, tc.lines())

	tc = newFakeToolchain()
	require.NoError(t, HandleTest(ctx, tc, cfg, cargo.TestCmdArgs{}, NoStd))
	assert.Equal(t, []string{"TestCrates " + noStdCrates + " flags=--no-default-features"}, tc.lines())

	tc = newFakeToolchain()
	tc.failAt = 0
	assert.Error(t, HandleTest(ctx, tc, cfg, cargo.TestCmdArgs{}, Std))
	assert.Len(t, tc.calls, 1)
}

func TestHandleDoc(t *testing.T) {
	tc := newFakeToolchain()
	args := cargo.DocCmdArgs{Target: cargo.TargetWorkspace, Command: cargo.DocBuild, Exclude: []string{"burn-candle"}}

	require.NoError(t, HandleDoc(context.Background(), tc, DefaultConfig(), args))
	assert.Equal(t, []string{"Doc build exclude=burn-candle,burn-cuda,burn-tch"}, tc.lines())
}

func TestHandleBooks(t *testing.T) {
	ctx := context.Background()
	tc := newFakeToolchain()

	require.NoError(t, HandleBooks(ctx, tc, DefaultConfig(), BooksArgs{Book: BurnBook, Command: BookOpen}))
	require.NoError(t, HandleBooks(ctx, tc, DefaultConfig(), BooksArgs{Book: ContributorBook, Command: BookBuild}))
	require.NoError(t, HandleBooks(ctx, tc, DefaultConfig(), BooksArgs{Book: BurnBook, Command: BookTest}))
	assert.Error(t, HandleBooks(ctx, tc, DefaultConfig(), BooksArgs{Book: "user", Command: BookBuild}))
	assert.Error(t, HandleBooks(ctx, tc, DefaultConfig(), BooksArgs{Book: BurnBook, Command: "publish"}))

	assert.Equal(t, []string{
		"Mdbook burn-book serve --open",
		"Mdbook contributor-book build",
		"Mdbook burn-book test",
	}, tc.lines())
}

func TestHandleValidate(t *testing.T) {
	tc := newFakeToolchain()

	require.NoError(t, HandleValidate(context.Background(), tc, DefaultConfig(), false))

	assert.Equal(t, []string{
		"Check audit",
		"Check format",
		"Check lint",
		"Check typos",
		"Build workspace exclude=burn-cuda,burn-tch",
		"BuildCrates crates=burn-dataset flags=--all-features",
		"AddTarget wasm32-unknown-unknown",
		"AddTarget thumbv7m-none-eabi",
		"BuildCrates " + noStdCrates + " flags=--no-default-features",
		"BuildCrates " + noStdCrates + " flags=--no-default-features --target wasm32-unknown-unknown",
		"BuildCrates " + noStdCrates + " flags=--no-default-features --target thumbv7m-none-eabi",
		"Test workspace exclude=burn-cuda,burn-tch",
		"TestCrates crates=burn-dataset flags=--all-features",
		"TestCrates " + noStdCrates + " flags=--no-default-features",
		"Doc build exclude=burn-cuda,burn-tch",
	}, tc.lines())
}

func TestHandleValidateSkipsInstalledTargets(t *testing.T) {
	tc := newFakeToolchain()

	require.NoError(t, HandleValidate(context.Background(), tc, DefaultConfig(), true))
	assert.NotContains(t, tc.lines(), "AddTarget wasm32-unknown-unknown")
	assert.NotContains(t, tc.lines(), "AddTarget thumbv7m-none-eabi")
}

func TestHandleValidateStopsAtFirstFailure(t *testing.T) {
	tc := newFakeToolchain()
	tc.failAt = 1

	assert.Error(t, HandleValidate(context.Background(), tc, DefaultConfig(), false))
	assert.Equal(t, []string{"Check audit", "Check format"}, tc.lines())
}
