package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleWriterFormatsEvents(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(NewConsoleWriter(&out))

	logger.Info().Bool("command", true).Msg("cargo fmt --all --check")
	assert.Contains(t, out.String(), "$")
	assert.Contains(t, out.String(), "cargo fmt --all --check")

	out.Reset()
	logger.Error().Err(eris.New("toolchain missing")).Msg("Build failed")
	assert.Contains(t, out.String(), "Error: Build failed")
	assert.Contains(t, out.String(), "toolchain missing")
}

func TestConsoleWriterRejectsGarbage(t *testing.T) {
	_, err := NewConsoleWriter(&bytes.Buffer{}).Write([]byte("not json"))
	require.Error(t, err)
}

func TestConsoleWriterShowsCommandDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	var out bytes.Buffer
	logger := zerolog.New(NewConsoleWriter(&out))

	logger.Info().Bool("command", true).Str("path", filepath.Join(wd, "burn-book")).Msg("mdbook build")
	assert.Contains(t, out.String(), "mdbook build")
	assert.Contains(t, out.String(), "(in burn-book)")

	out.Reset()
	logger.Info().Bool("command", true).Str("path", wd).Msg("cargo build --workspace")
	assert.NotContains(t, out.String(), "(in ")
}

func TestRelativeDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, ".", relativeDir(wd))
	assert.Equal(t, "contributor-book/src", relativeDir(filepath.Join(wd, "contributor-book", "src")))
	assert.Equal(t, filepath.Dir(wd), relativeDir(filepath.Dir(wd)))
}
