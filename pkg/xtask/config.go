package xtask

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// DefaultTarget is the sentinel for "build for the host", i.e. no --target flag.
const DefaultTarget = "Default"

// DisableWgpuEnvVar excludes the wgpu backend from std builds when set to any value.
const DisableWgpuEnvVar = "DISABLE_WGPU"

// Config holds everything the burn-specific handlers need. Handlers never read the process
// environment themselves.
type Config struct {
	WasmTarget        string   `yaml:"wasm_target"`
	ArmTarget         string   `yaml:"arm_target"`
	NoStdCrates       []string `yaml:"no_std_crates"`
	UnsupportedCrates []string `yaml:"unsupported_crates"`
	WgpuCrate         string   `yaml:"wgpu_crate"`
	AuxiliaryCrate    string   `yaml:"auxiliary_crate"`
	BurnBook          string   `yaml:"burn_book"`
	ContributorBook   string   `yaml:"contributor_book"`

	DisableWgpu bool `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		WasmTarget: "wasm32-unknown-unknown",
		ArmTarget:  "thumbv7m-none-eabi",
		NoStdCrates: []string{
			"burn",
			"burn-core",
			"burn-common",
			"burn-tensor",
			"burn-ndarray",
			"burn-no-std-tests",
		},
		UnsupportedCrates: []string{"burn-cuda", "burn-tch"},
		WgpuCrate:         "burn-wgpu",
		AuxiliaryCrate:    "burn-dataset",
		BurnBook:          "burn-book",
		ContributorBook:   "contributor-book",
	}
}

// NoStdTargets lists the targets every no-std crate has to build for, in order.
func (c Config) NoStdTargets() []string {
	return []string{DefaultTarget, c.WasmTarget, c.ArmTarget}
}

// LoadConfig starts from the defaults, applies the yaml overrides in path (a missing file is
// fine) and resolves the environment toggles through lookupEnv.
func LoadConfig(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !eris.Is(err, os.ErrNotExist) {
				return cfg, eris.Wrapf(err, "Could not open file %s.", path)
			}
		} else {
			err = yaml.Unmarshal(data, &cfg)
			if err != nil {
				return cfg, eris.Wrapf(err, "Failed to parse %s.", path)
			}
		}
	}

	// Presence is what counts: DISABLE_WGPU= and DISABLE_WGPU=false both disable wgpu.
	_, cfg.DisableWgpu = lookupEnv(DisableWgpuEnvVar)

	return cfg, nil
}
