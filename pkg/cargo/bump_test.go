package cargo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextVersion(t *testing.T) {
	tests := []struct {
		current string
		kind    BumpSubCommand
		want    string
	}{
		{"0.13.2", BumpMajor, "1.0.0"},
		{"0.13.2", BumpMinor, "0.14.0"},
		{"0.13.2", BumpPatch, "0.13.3"},
		{"1.0.0-pre.1", BumpPatch, "1.0.0"},
	}

	for _, tt := range tests {
		got, err := NextVersion(tt.current, tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.current, tt.kind)
	}

	_, err := NextVersion("not-a-version", BumpMinor)
	assert.Error(t, err)

	_, err = NextVersion("1.0.0", "micro")
	assert.Error(t, err)
}

func TestBump(t *testing.T) {
	c, rec := newTestCargo(t, fixtureWorkspace(t))
	c.lookPath = missingTools

	require.NoError(t, c.Bump(context.Background(), BumpCmdArgs{Command: BumpMinor}))

	assert.Equal(t, []string{
		"cargo install cargo-edit",
		"cargo set-version --workspace 0.14.0",
	}, rec.lines())
}
