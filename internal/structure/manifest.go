package structure

import (
	"context"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	raderr "radius/internal/errors"
)

// ManifestFile is the default filename for component declarations.
const ManifestFile = "COMPONENTS.toml"

// ComponentDeclaration represents a declared component in COMPONENTS.toml.
type ComponentDeclaration struct {
	// Name is the unique component identifier
	Name string `toml:"name"`

	// DependsOn lists the names of components this component depends on
	DependsOn []string `toml:"depends_on,omitempty"`

	// Path is the repo-relative path to the component root (informational)
	Path string `toml:"path,omitempty"`

	// Owner is the owner reference (e.g., @team-name or user@email.com)
	Owner string `toml:"owner,omitempty"`

	// Tags are classification tags for the component
	Tags []string `toml:"tags,omitempty"`
}

// ManifestDoc represents the root structure of COMPONENTS.toml.
type ManifestDoc struct {
	Version    int                    `toml:"version,omitempty"`
	Components []ComponentDeclaration `toml:"component"`
}

// ManifestProvider reads the component topology from a TOML manifest.
type ManifestProvider struct {
	path string
}

// NewManifestProvider creates a provider backed by the manifest at path.
func NewManifestProvider(path string) *ManifestProvider {
	return &ManifestProvider{path: path}
}

// ListComponents loads and validates the manifest.
func (p *ManifestProvider) ListComponents(ctx context.Context) ([]Component, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, raderr.New(raderr.ProviderUnavailable,
				fmt.Sprintf("component manifest not found at %s", p.path), err)
		}
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("failed to read component manifest %s", p.path), err)
	}

	var doc ManifestDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("failed to parse component manifest %s", p.path), err)
	}

	seen := make(map[string]bool, len(doc.Components))
	components := make([]Component, 0, len(doc.Components))
	for i, decl := range doc.Components {
		if decl.Name == "" {
			return nil, raderr.New(raderr.ProviderUnavailable,
				fmt.Sprintf("component #%d in %s has no name", i+1, p.path), nil)
		}
		if seen[decl.Name] {
			return nil, raderr.New(raderr.ProviderUnavailable,
				fmt.Sprintf("duplicate component %q in %s", decl.Name, p.path), nil)
		}
		seen[decl.Name] = true

		components = append(components, Component{
			Name:         decl.Name,
			Dependencies: append([]string(nil), decl.DependsOn...),
		})
	}

	SortComponents(components)
	return components, nil
}
