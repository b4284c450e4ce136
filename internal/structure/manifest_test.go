package structure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	raderr "radius/internal/errors"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManifestProvider(t *testing.T) {
	path := writeManifest(t, `
version = 1

[[component]]
name = "api"
depends_on = ["core", "storage"]
owner = "@platform"

[[component]]
name = "core"

[[component]]
name = "storage"
depends_on = ["core"]
`)

	provider := NewManifestProvider(path)
	components, err := provider.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents failed: %v", err)
	}

	if len(components) != 3 {
		t.Fatalf("len(components) = %d, want 3", len(components))
	}

	// SortComponents orders by name
	if components[0].Name != "api" || components[1].Name != "core" || components[2].Name != "storage" {
		t.Errorf("unexpected component order: %v", components)
	}
	if len(components[0].Dependencies) != 2 {
		t.Errorf("api dependencies = %v, want [core storage]", components[0].Dependencies)
	}
	if len(components[1].Dependencies) != 0 {
		t.Errorf("core should have no dependencies, got %v", components[1].Dependencies)
	}
}

func TestManifestProviderMissingFile(t *testing.T) {
	provider := NewManifestProvider(filepath.Join(t.TempDir(), ManifestFile))
	_, err := provider.ListComponents(context.Background())
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	rerr, ok := err.(*raderr.RadiusError)
	if !ok || rerr.Code != raderr.ProviderUnavailable {
		t.Errorf("error = %v, want PROVIDER_UNAVAILABLE", err)
	}
}

func TestManifestProviderDuplicateName(t *testing.T) {
	path := writeManifest(t, `
[[component]]
name = "api"

[[component]]
name = "api"
`)

	provider := NewManifestProvider(path)
	_, err := provider.ListComponents(context.Background())
	if err == nil {
		t.Fatal("expected error for duplicate component name")
	}
}

func TestManifestProviderUnnamedComponent(t *testing.T) {
	path := writeManifest(t, `
[[component]]
depends_on = ["core"]
`)

	provider := NewManifestProvider(path)
	_, err := provider.ListComponents(context.Background())
	if err == nil {
		t.Fatal("expected error for unnamed component")
	}
}

func TestStaticProvider(t *testing.T) {
	provider := &Static{Components: []Component{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b"},
	}}

	components, err := provider.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents failed: %v", err)
	}
	if len(components) != 2 {
		t.Errorf("len(components) = %d, want 2", len(components))
	}
}

func TestSortComponents(t *testing.T) {
	components := []Component{
		{Name: "z", Dependencies: []string{"m", "a"}},
		{Name: "a"},
	}

	SortComponents(components)

	if components[0].Name != "a" {
		t.Errorf("components[0] = %q, want a", components[0].Name)
	}
	if components[1].Dependencies[0] != "a" {
		t.Errorf("dependencies not sorted: %v", components[1].Dependencies)
	}
}
