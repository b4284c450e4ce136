//go:build cgo

package structure

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	raderr "radius/internal/errors"
)

// SourceProvider derives components from Go source by scanning import
// declarations with tree-sitter. Each package directory becomes one
// component; intra-module imports become its dependencies.
type SourceProvider struct {
	root   string
	parser *sitter.Parser
}

// NewSourceProvider creates a provider scanning the module rooted at root.
func NewSourceProvider(root string) *SourceProvider {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	return &SourceProvider{
		root:   root,
		parser: parser,
	}
}

// ListComponents walks the module tree and builds one component per
// package directory.
func (p *SourceProvider) ListComponents(ctx context.Context) ([]Component, error) {
	modulePath, err := readModulePath(filepath.Join(p.root, "go.mod"))
	if err != nil {
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("cannot determine module path under %s", p.root), err)
	}

	deps := make(map[string]map[string]bool)

	walkErr := filepath.Walk(p.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if info.IsDir() {
			name := info.Name()
			if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" || name == "testdata" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		imports, err := p.scanImports(ctx, source)
		if err != nil {
			return nil // Unparseable files don't fail the snapshot
		}

		component, relErr := p.componentName(filepath.Dir(path))
		if relErr != nil {
			return nil
		}
		if deps[component] == nil {
			deps[component] = make(map[string]bool)
		}
		for _, imp := range imports {
			target, ok := intraModule(imp, modulePath)
			if ok && target != component {
				deps[component][target] = true
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("failed to scan sources under %s", p.root), walkErr)
	}

	components := make([]Component, 0, len(deps))
	for name, targets := range deps {
		names := make([]string, 0, len(targets))
		for t := range targets {
			names = append(names, t)
		}
		sort.Strings(names)
		components = append(components, Component{Name: name, Dependencies: names})
	}

	SortComponents(components)
	return components, nil
}

// scanImports extracts import paths from a single Go file.
func (p *SourceProvider) scanImports(ctx context.Context, source []byte) ([]string, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	var imports []string

	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Type() == "import_spec" {
			if lit := childOfType(node, "interpreted_string_literal"); lit != nil {
				imports = append(imports, strings.Trim(lit.Content(source), `"`))
			}
			return
		}
		for i := uint32(0); i < node.ChildCount(); i++ {
			walk(node.Child(int(i)))
		}
	}
	walk(root)

	return imports, nil
}

// componentName maps a package directory to its component name, the
// slash-separated path relative to the module root ("." for the root).
func (p *SourceProvider) componentName(dir string) (string, error) {
	rel, err := filepath.Rel(p.root, dir)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// intraModule resolves an import path to a component name when the import
// stays inside the module.
func intraModule(importPath, modulePath string) (string, bool) {
	if importPath == modulePath {
		return ".", true
	}
	if strings.HasPrefix(importPath, modulePath+"/") {
		return importPath[len(modulePath)+1:], true
	}
	return "", false
}

func childOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := uint32(0); i < node.ChildCount(); i++ {
		child := node.Child(int(i))
		if child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}

// readModulePath extracts the module path from a go.mod file.
func readModulePath(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "module ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "module ")), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no module directive in %s", path)
}
