//go:build cgo

package structure

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSourceProvider(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "go.mod", "module example.com/app\n\ngo 1.24\n")
	writeFile(t, root, "main.go", `package main

import (
	"fmt"

	"example.com/app/internal/core"
)

func main() { fmt.Println(core.Run()) }
`)
	writeFile(t, root, "internal/core/core.go", `package core

import "example.com/app/internal/store"

func Run() string { return store.Get() }
`)
	writeFile(t, root, "internal/store/store.go", `package store

func Get() string { return "ok" }
`)

	provider := NewSourceProvider(root)
	components, err := provider.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents failed: %v", err)
	}

	byName := make(map[string][]string)
	for _, c := range components {
		byName[c.Name] = c.Dependencies
	}

	deps, ok := byName["."]
	if !ok {
		t.Fatalf("missing root component, got %v", components)
	}
	if len(deps) != 1 || deps[0] != "internal/core" {
		t.Errorf("root dependencies = %v, want [internal/core]", deps)
	}

	deps = byName["internal/core"]
	if len(deps) != 1 || deps[0] != "internal/store" {
		t.Errorf("internal/core dependencies = %v, want [internal/store]", deps)
	}

	if len(byName["internal/store"]) != 0 {
		t.Errorf("internal/store dependencies = %v, want none", byName["internal/store"])
	}
}

func TestSourceProviderSkipsTests(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "go.mod", "module example.com/app\n")
	writeFile(t, root, "a/a.go", "package a\n")
	writeFile(t, root, "a/a_test.go", `package a

import "example.com/app/b"

var _ = b.X
`)
	writeFile(t, root, "b/b.go", "package b\n\nvar X = 1\n")

	provider := NewSourceProvider(root)
	components, err := provider.ListComponents(context.Background())
	if err != nil {
		t.Fatalf("ListComponents failed: %v", err)
	}

	for _, c := range components {
		if c.Name == "a" && len(c.Dependencies) != 0 {
			t.Errorf("test-only import should be ignored, got %v", c.Dependencies)
		}
	}
}

func TestSourceProviderMissingGoMod(t *testing.T) {
	provider := NewSourceProvider(t.TempDir())
	_, err := provider.ListComponents(context.Background())
	if err == nil {
		t.Fatal("expected error without go.mod")
	}
}
