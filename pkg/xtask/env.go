package xtask

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ExecutionEnvironment selects between hosted builds and no-std (embedded/WASM) builds.
type ExecutionEnvironment int

const (
	Std ExecutionEnvironment = iota
	NoStd
)

var ExecutionEnvironments = []string{"std", "no-std"}

func (e ExecutionEnvironment) String() string {
	switch e {
	case Std:
		return "std"
	case NoStd:
		return "no-std"
	}
	return "unknown"
}

func ParseExecutionEnvironment(value string) (ExecutionEnvironment, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "std", "":
		return Std, nil
	case "no-std", "nostd":
		return NoStd, nil
	}

	return Std, eris.Errorf("Unknown execution environment %q, expected one of %v", value, ExecutionEnvironments)
}
