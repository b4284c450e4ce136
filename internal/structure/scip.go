package structure

import (
	"context"
	"fmt"
	"os"
	"sort"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	raderr "radius/internal/errors"
)

// SCIPProvider derives components from a SCIP protobuf index. Each indexed
// document becomes one component; a reference occurrence to a symbol
// defined in another document becomes a dependency edge between the two.
type SCIPProvider struct {
	indexPath string
}

// NewSCIPProvider creates a provider backed by the index file at path.
func NewSCIPProvider(path string) *SCIPProvider {
	return &SCIPProvider{indexPath: path}
}

// ListComponents loads the index and projects it onto file-level components.
func (p *SCIPProvider) ListComponents(ctx context.Context) ([]Component, error) {
	if _, err := os.Stat(p.indexPath); os.IsNotExist(err) {
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("SCIP index not found at %s", p.indexPath), err)
	}

	data, err := os.ReadFile(p.indexPath)
	if err != nil {
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("failed to read SCIP index from %s", p.indexPath), err)
	}

	var index scippb.Index
	if err := proto.Unmarshal(data, &index); err != nil {
		return nil, raderr.New(raderr.ProviderUnavailable,
			fmt.Sprintf("failed to parse SCIP index from %s", p.indexPath), err)
	}

	return componentsFromIndex(&index), nil
}

// componentsFromIndex computes the document-level dependency projection.
func componentsFromIndex(index *scippb.Index) []Component {
	// Pass 1: where is each symbol defined
	definedIn := make(map[string]string)
	for _, doc := range index.Documents {
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) != 0 {
				definedIn[occ.Symbol] = doc.RelativePath
			}
		}
	}

	// Pass 2: reference occurrences into other documents become edges
	deps := make(map[string]map[string]bool, len(index.Documents))
	for _, doc := range index.Documents {
		if deps[doc.RelativePath] == nil {
			deps[doc.RelativePath] = make(map[string]bool)
		}
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) != 0 {
				continue
			}
			target, ok := definedIn[occ.Symbol]
			if ok && target != doc.RelativePath {
				deps[doc.RelativePath][target] = true
			}
		}
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
	return components
}
