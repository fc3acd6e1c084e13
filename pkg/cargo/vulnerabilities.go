package cargo

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/jguhlin/burn/xtask/pkg"
)

type VulnerabilitiesSubCommand string

const (
	VulnerabilitiesAll                        VulnerabilitiesSubCommand = "all"
	VulnerabilitiesAddressSanitizer           VulnerabilitiesSubCommand = "address-sanitizer"
	VulnerabilitiesControlFlowIntegrity       VulnerabilitiesSubCommand = "control-flow-integrity"
	VulnerabilitiesHWAddressSanitizer         VulnerabilitiesSubCommand = "hw-address-sanitizer"
	VulnerabilitiesKernelControlFlowIntegrity VulnerabilitiesSubCommand = "kernel-control-flow-integrity"
	VulnerabilitiesLeakSanitizer              VulnerabilitiesSubCommand = "leak-sanitizer"
	VulnerabilitiesMemorySanitizer            VulnerabilitiesSubCommand = "memory-sanitizer"
	VulnerabilitiesSafeStack                  VulnerabilitiesSubCommand = "safe-stack"
	VulnerabilitiesThreadSanitizer            VulnerabilitiesSubCommand = "thread-sanitizer"
)

type sanitizer struct {
	flags     string
	supported []string
}

const (
	linuxX86   = "x86_64-unknown-linux-gnu"
	linuxArm   = "aarch64-unknown-linux-gnu"
	darwinX86  = "x86_64-apple-darwin"
	darwinArm  = "aarch64-apple-darwin"
	windowsX86 = "x86_64-pc-windows-msvc"
)

// Order matters: "all" runs them in this sequence.
var sanitizerOrder = []VulnerabilitiesSubCommand{
	VulnerabilitiesAddressSanitizer,
	VulnerabilitiesControlFlowIntegrity,
	VulnerabilitiesHWAddressSanitizer,
	VulnerabilitiesKernelControlFlowIntegrity,
	VulnerabilitiesLeakSanitizer,
	VulnerabilitiesMemorySanitizer,
	VulnerabilitiesSafeStack,
	VulnerabilitiesThreadSanitizer,
}

var sanitizers = map[VulnerabilitiesSubCommand]sanitizer{
	VulnerabilitiesAddressSanitizer:           {"-Zsanitizer=address", []string{linuxX86, linuxArm, darwinX86, darwinArm}},
	VulnerabilitiesControlFlowIntegrity:       {"-Clto -Zsanitizer=cfi", []string{linuxX86, linuxArm}},
	VulnerabilitiesHWAddressSanitizer:         {"-Zsanitizer=hwaddress -Ctarget-feature=+tagged-globals", []string{linuxArm}},
	VulnerabilitiesKernelControlFlowIntegrity: {"-Zsanitizer=kcfi", []string{linuxX86, linuxArm}},
	VulnerabilitiesLeakSanitizer:              {"-Zsanitizer=leak", []string{linuxX86, linuxArm, darwinX86, darwinArm}},
	VulnerabilitiesMemorySanitizer:            {"-Zsanitizer=memory -Zsanitizer-memory-track-origins", []string{linuxX86, linuxArm}},
	VulnerabilitiesSafeStack:                  {"-Zsanitizer=safestack", []string{linuxX86}},
	VulnerabilitiesThreadSanitizer:            {"-Zsanitizer=thread", []string{linuxX86, linuxArm, darwinX86, darwinArm}},
}

var VulnerabilitiesSubCommands = func() []string {
	names := []string{string(VulnerabilitiesAll)}
	for _, sub := range sanitizerOrder {
		names = append(names, string(sub))
	}
	return names
}()

type VulnerabilitiesCmdArgs struct {
	Command VulnerabilitiesSubCommand
}

func hostTriple(goos, goarch string) string {
	switch goos + "/" + goarch {
	case "linux/amd64":
		return linuxX86
	case "linux/arm64":
		return linuxArm
	case "darwin/amd64":
		return darwinX86
	case "darwin/arm64":
		return darwinArm
	case "windows/amd64":
		return windowsX86
	}
	return ""
}

// Vulnerabilities runs the workspace tests on nightly under the requested sanitizers.
// Sanitizers the host does not support are skipped with a warning.
func (c *Cargo) Vulnerabilities(ctx context.Context, args VulnerabilitiesCmdArgs) error {
	var selected []VulnerabilitiesSubCommand
	if args.Command == VulnerabilitiesAll {
		selected = sanitizerOrder
	} else {
		if _, ok := sanitizers[args.Command]; !ok {
			return eris.Errorf("Unknown vulnerabilities command %s", args.Command)
		}
		selected = []VulnerabilitiesSubCommand{args.Command}
	}

	if c.host == "" {
		return eris.New("Sanitizers are not supported on this host")
	}

	err := c.run(ctx, "rustup", "component", "add", "rust-src", "--toolchain", "nightly")
	if err != nil {
		return eris.Wrap(err, "Failed to install the nightly rust-src component")
	}

	for _, sub := range selected {
		s := sanitizers[sub]
		if !contains(s.supported, c.host) {
			pkg.Log(ctx).Warn().Msgf("%s is not supported on %s, skipping", sub, c.host)
			continue
		}

		pkg.PrintTask("Run tests with " + string(sub))
		env := map[string]string{
			"RUSTFLAGS":    s.flags,
			"RUSTDOCFLAGS": s.flags,
		}
		err := c.cargoEnv(ctx, env, "+nightly", "test", "--workspace", "-Zbuild-std", "--target", c.host, "--color", "always")
		if err != nil {
			return eris.Wrapf(err, "Tests failed under %s", sub)
		}
	}

	return nil
}

func contains(items []string, value string) bool {
	for _, item := range items {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
