package cargo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverage(t *testing.T) {
	c, rec := newTestCargo(t, "/workspace")
	c.lookPath = missingTools
	ctx := context.Background()

	require.NoError(t, c.Coverage(ctx, CoverageCmdArgs{Command: CoverageInstall}))
	require.NoError(t, c.Coverage(ctx, CoverageCmdArgs{Command: CoverageGenerate, Profile: "release", Ignore: []string{"crates/burn-tch/*"}}))
	assert.Error(t, c.Coverage(ctx, CoverageCmdArgs{Command: CoverageGenerate, Profile: "bench"}))

	assert.Equal(t, []string{
		"rustup component add llvm-tools-preview",
		"cargo install grcov",
		"grcov . --binary-path ./target/release/ -s . -t lcov --branch --ignore-not-existing " +
			"--ignore /* --ignore xtask/* --ignore examples/* --ignore crates/burn-tch/* -o lcov.info",
	}, rec.lines())
}

func TestDependenciesAll(t *testing.T) {
	c, rec := newTestCargo(t, "/workspace")

	require.NoError(t, c.Dependencies(context.Background(), DependenciesCmdArgs{Command: DependenciesAll}))

	assert.Equal(t, []string{
		"cargo deny check",
		"cargo +nightly udeps --workspace",
	}, rec.lines())
}

func TestVulnerabilitiesSkipsUnsupportedSanitizers(t *testing.T) {
	c, rec := newTestCargo(t, "/workspace")
	c.host = darwinArm

	require.NoError(t, c.Vulnerabilities(context.Background(), VulnerabilitiesCmdArgs{Command: VulnerabilitiesAll}))

	assert.Equal(t, []string{
		"rustup component add rust-src --toolchain nightly",
		"cargo +nightly test --workspace -Zbuild-std --target aarch64-apple-darwin --color always",
		"cargo +nightly test --workspace -Zbuild-std --target aarch64-apple-darwin --color always",
		"cargo +nightly test --workspace -Zbuild-std --target aarch64-apple-darwin --color always",
	}, rec.lines())
	assert.Equal(t, "-Zsanitizer=address", rec.cmds[1].Env["RUSTFLAGS"])
	assert.Equal(t, "-Zsanitizer=leak", rec.cmds[2].Env["RUSTFLAGS"])
	assert.Equal(t, "-Zsanitizer=thread", rec.cmds[3].Env["RUSTDOCFLAGS"])
}

func TestVulnerabilitiesSingle(t *testing.T) {
	c, rec := newTestCargo(t, "/workspace")

	require.NoError(t, c.Vulnerabilities(context.Background(), VulnerabilitiesCmdArgs{Command: VulnerabilitiesMemorySanitizer}))
	require.Len(t, rec.cmds, 2)
	assert.Equal(t, "-Zsanitizer=memory -Zsanitizer-memory-track-origins", rec.cmds[1].Env["RUSTFLAGS"])

	assert.Error(t, c.Vulnerabilities(context.Background(), VulnerabilitiesCmdArgs{Command: "fuzz"}))
}

func TestHostTriple(t *testing.T) {
	assert.Equal(t, "x86_64-unknown-linux-gnu", hostTriple("linux", "amd64"))
	assert.Equal(t, "aarch64-apple-darwin", hostTriple("darwin", "arm64"))
	assert.Equal(t, "", hostTriple("plan9", "386"))
}
