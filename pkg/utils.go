package pkg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/colorstring"
	"github.com/pelletier/go-toml/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// GetProjectRoot walks up from start until it finds a Cargo.toml that declares a [workspace].
func GetProjectRoot(start string) (string, error) {
	mypath, err := filepath.Abs(start)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to resolve %s", start)
	}

	for {
		manifest := filepath.Join(mypath, "Cargo.toml")
		isWorkspace, err := declaresWorkspace(manifest)
		if err != nil {
			return "", err
		}

		if isWorkspace {
			return mypath, nil
		}

		nextPath := filepath.Dir(mypath)
		if mypath == nextPath {
			break
		}
		mypath = nextPath
	}

	return "", eris.New("Project root not found")
}

func declaresWorkspace(manifest string) (bool, error) {
	data, err := os.ReadFile(manifest)
	if err != nil {
		if eris.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, eris.Wrapf(err, "Error ocurred while reading %s", manifest)
	}

	var doc map[string]interface{}
	err = toml.Unmarshal(data, &doc)
	if err != nil {
		return false, eris.Wrapf(err, "Failed to parse %s", manifest)
	}

	_, ok := doc["workspace"]
	return ok, nil
}

// FormatDuration renders d as "N minutes and M seconds", or "M seconds" below one minute.
func FormatDuration(d time.Duration) string {
	seconds := int64(d / time.Second)
	minutes := seconds / 60
	remaining := seconds % 60

	if minutes > 0 {
		return fmt.Sprintf("%d minutes and %d seconds", minutes, remaining)
	}
	return fmt.Sprintf("%d seconds", remaining)
}

func PrintTask(msg string) {
	colorstring.Fprintf(os.Stderr, "[blue][bold]==>[default] %s\n", msg)
}

func PrintSubtask(msg string) {
	colorstring.Fprintf(os.Stderr, "[green][bold]  ->[reset] %s\n", msg)
}

func PrintError(msg string) {
	colorstring.Fprintf(os.Stderr, "[red][bold]  ->[reset] %s\n", msg)
}

type logKey struct{}

// Log returns the logger attached to ctx, or a disabled logger if there is none.
func Log(ctx context.Context) *zerolog.Logger {
	logger, ok := ctx.Value(logKey{}).(*zerolog.Logger)
	if !ok {
		nop := zerolog.Nop()
		return &nop
	}

	return logger
}

// WithLogger attaches the given logger to the context
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, logKey{}, logger)
}
