package cargo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rotisserie/eris"
)

type manifest struct {
	Workspace *struct {
		Members []string `toml:"members"`
		Exclude []string `toml:"exclude"`
		Package struct {
			Version string `toml:"version"`
		} `toml:"package"`
	} `toml:"workspace"`
	Package *struct {
		Name string `toml:"name"`
		// Either a plain string or {workspace = true}.
		Version interface{} `toml:"version"`
	} `toml:"package"`
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "Could not open file %s.", path)
	}

	var m manifest
	err = toml.Unmarshal(data, &m)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to parse %s.", path)
	}

	return &m, nil
}

// Member is a package that belongs to the workspace.
type Member struct {
	Name    string
	Version string
	// Path is relative to the workspace root and uses forward slashes.
	Path string
}

func (m Member) IsCrate() bool {
	return strings.HasPrefix(m.Path, "crates/")
}

func (m Member) IsExample() bool {
	return strings.HasPrefix(m.Path, "examples/")
}

// Workspace holds the parsed root manifest and all resolved members.
type Workspace struct {
	Root    string
	Version string
	Members []Member
}

// LoadWorkspace reads <root>/Cargo.toml and resolves every member glob.
func LoadWorkspace(root string) (*Workspace, error) {
	rootManifest, err := readManifest(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return nil, err
	}

	if rootManifest.Workspace == nil {
		return nil, eris.Errorf("%s does not declare a workspace", root)
	}

	ws := &Workspace{
		Root:    root,
		Version: rootManifest.Workspace.Package.Version,
	}

	excluded := make(map[string]bool)
	for _, item := range rootManifest.Workspace.Exclude {
		excluded[filepath.ToSlash(filepath.Clean(item))] = true
	}

	seen := make(map[string]bool)
	for _, pattern := range rootManifest.Workspace.Members {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(pattern)))
		if err != nil {
			return nil, eris.Wrapf(err, "Failed to resolve member pattern %s", pattern)
		}

		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				return nil, eris.Wrapf(err, "Failed to simplify path %s", match)
			}
			rel = filepath.ToSlash(rel)

			if excluded[rel] || seen[rel] {
				continue
			}

			info, err := os.Stat(match)
			if err != nil {
				return nil, eris.Wrapf(err, "Failed to check %s", match)
			}
			if !info.IsDir() {
				continue
			}

			memberPath := filepath.Join(match, "Cargo.toml")
			if _, err := os.Stat(memberPath); err != nil {
				if eris.Is(err, os.ErrNotExist) {
					continue
				}
				return nil, eris.Wrapf(err, "Failed to check %s", memberPath)
			}

			m, err := readManifest(memberPath)
			if err != nil {
				return nil, err
			}

			if m.Package == nil {
				continue
			}

			version, ok := m.Package.Version.(string)
			if !ok {
				version = ws.Version
			}

			seen[rel] = true
			ws.Members = append(ws.Members, Member{
				Name:    m.Package.Name,
				Version: version,
				Path:    rel,
			})
		}
	}

	return ws, nil
}

// Member looks up a workspace member by package name.
func (w *Workspace) Member(name string) (Member, bool) {
	for _, m := range w.Members {
		if m.Name == name {
			return m, true
		}
	}

	return Member{}, false
}

// Select returns the names of the members matching target, minus exclude. A non-empty only
// list restricts the result to those names.
func (w *Workspace) Select(target Target, exclude, only []string) []string {
	skip := toSet(exclude)
	keep := toSet(only)

	result := []string{}
	for _, m := range w.Members {
		switch target {
		case TargetCrates:
			if !m.IsCrate() {
				continue
			}
		case TargetExamples:
			if !m.IsExample() {
				continue
			}
		case TargetAllPackages:
			if !m.IsCrate() && !m.IsExample() {
				continue
			}
		}

		if skip[m.Name] {
			continue
		}
		if len(keep) > 0 && !keep[m.Name] {
			continue
		}

		result = append(result, m.Name)
	}

	return result
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
