// Package contracts provides validation of contract documents referenced
// by change specifications.
//
// Contract documents are YAML files with an explicit tagged-variant shape:
// the top-level "type" selects exactly one of the interface, behavior, or
// resource sections. Unknown fields and mismatched variants are rejected
// at the parse boundary instead of being accessed dynamically.
package contracts

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	raderr "radius/internal/errors"
)

// Contract types understood by the validator.
const (
	TypeInterface = "interface"
	TypeBehavior  = "behavior"
	TypeResource  = "resource"
)

// Validation is the verdict for a single contract.
type Validation struct {
	Contract string   `json:"contract" yaml:"contract"`
	IsValid  bool     `json:"isValid" yaml:"isValid"`
	Errors   []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Validator checks contracts by name and type.
type Validator interface {
	// Validate returns the verdict for the named contract. A missing or
	// unreadable contract is an error, not an invalid verdict.
	Validate(ctx context.Context, name, contractType string) (*Validation, error)
}

// InterfaceContract describes a callable surface.
type InterfaceContract struct {
	Methods []MethodSpec `yaml:"methods"`
}

// MethodSpec is one method of an interface contract.
type MethodSpec struct {
	Name      string `yaml:"name"`
	Signature string `yaml:"signature"`
}

// BehaviorContract describes observable behavior scenarios.
type BehaviorContract struct {
	Scenarios []ScenarioSpec `yaml:"scenarios"`
}

// ScenarioSpec is one given/when/then scenario.
type ScenarioSpec struct {
	Given string `yaml:"given"`
	When  string `yaml:"when"`
	Then  string `yaml:"then"`
}

// ResourceContract describes resource expectations.
type ResourceContract struct {
	Capacity map[string]float64 `yaml:"capacity"`
}

// Document is a parsed contract document. Exactly one variant section must
// be present and it must match the declared type.
type Document struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Version int    `yaml:"version,omitempty"`

	Interface *InterfaceContract `yaml:"interface,omitempty"`
	Behavior  *BehaviorContract  `yaml:"behavior,omitempty"`
	Resource  *ResourceContract  `yaml:"resource,omitempty"`
}

// DirValidator validates contracts stored as <name>.yaml files in a
// directory.
type DirValidator struct {
	dir string
}

// NewDirValidator creates a validator reading from dir.
func NewDirValidator(dir string) *DirValidator {
	return &DirValidator{dir: dir}
}

// Validate loads and checks the named contract document.
func (v *DirValidator) Validate(ctx context.Context, name, contractType string) (*Validation, error) {
	path := filepath.Join(v.dir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, raderr.New(raderr.ContractNotFound,
				fmt.Sprintf("contract %q not found at %s", name, path), err)
		}
		return nil, raderr.New(raderr.ContractNotFound,
			fmt.Sprintf("failed to read contract %q from %s", name, path), err)
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}

	return CheckDocument(doc, name, contractType), nil
}

// ParseDocument decodes a contract document, rejecting unknown shapes.
func ParseDocument(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, raderr.New(raderr.ContractInvalid, "failed to parse contract document", err)
	}

	switch doc.Type {
	case TypeInterface, TypeBehavior, TypeResource:
	default:
		return nil, raderr.New(raderr.ContractInvalid,
			fmt.Sprintf("unknown contract type %q", doc.Type), nil)
	}

	if n := countVariants(&doc); n != 1 {
		return nil, raderr.New(raderr.ContractInvalid,
			fmt.Sprintf("contract document must carry exactly one variant section, found %d", n), nil)
	}

	return &doc, nil
}

func countVariants(doc *Document) int {
	n := 0
	if doc.Interface != nil {
		n++
	}
	if doc.Behavior != nil {
		n++
	}
	if doc.Resource != nil {
		n++
	}
	return n
}

// CheckDocument produces the verdict for a parsed document against the
// requested name and type.
func CheckDocument(doc *Document, name, contractType string) *Validation {
	result := &Validation{Contract: name, IsValid: true}

	fail := func(format string, args ...interface{}) {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}

	if doc.Name != name {
		fail("document name %q does not match contract %q", doc.Name, name)
	}
	if doc.Type != contractType {
		fail("contract is declared as %q, expected %q", doc.Type, contractType)
	}

	switch doc.Type {
	case TypeInterface:
		if doc.Interface == nil {
			fail("interface contract has no interface section")
			break
		}
		if len(doc.Interface.Methods) == 0 {
			fail("interface contract declares no methods")
		}
		for i, m := range doc.Interface.Methods {
			if m.Name == "" {
				fail("method #%d has no name", i+1)
			}
			if m.Signature == "" {
				fail("method %q has no signature", m.Name)
			}
		}
	case TypeBehavior:
		if doc.Behavior == nil {
			fail("behavior contract has no behavior section")
			break
		}
		if len(doc.Behavior.Scenarios) == 0 {
			fail("behavior contract declares no scenarios")
		}
		for i, s := range doc.Behavior.Scenarios {
			if s.Given == "" || s.When == "" || s.Then == "" {
				fail("scenario #%d is missing given/when/then", i+1)
			}
		}
	case TypeResource:
		if doc.Resource == nil {
			fail("resource contract has no resource section")
			break
		}
		if len(doc.Resource.Capacity) == 0 {
			fail("resource contract declares no capacity entries")
		}
		for key, val := range doc.Resource.Capacity {
			if val < 0 {
				fail("capacity %q is negative", key)
			}
		}
	}

	return result
}
