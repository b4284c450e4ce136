// Package change defines the change specification consumed by the impact
// engine and its YAML document boundary.
package change

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	raderr "radius/internal/errors"
)

// Type classifies the character of a proposed change.
type Type string

const (
	TypeContract       Type = "contract"
	TypeImplementation Type = "implementation"
	TypeResource       Type = "resource"
	TypeOther          Type = "other"
)

// Multiplier returns the system-wide score multiplier for the change type.
// Unrecognized types deliberately fall through to 1.0.
func (t Type) Multiplier() float64 {
	switch t {
	case TypeContract:
		return 1.5
	case TypeImplementation:
		return 1.2
	case TypeResource:
		return 1.3
	default:
		return 1.0
	}
}

// Specification describes a proposed change to a single component.
// Loaded once per analysis invocation and immutable thereafter.
type Specification struct {
	// Component is the name of the component being changed
	Component string `yaml:"component" json:"component"`

	// ChangeType is one of contract, implementation, resource, other
	ChangeType Type `yaml:"changeType" json:"changeType"`

	// Changes holds the changed fields as free-form key/value pairs
	Changes map[string]interface{} `yaml:"changes,omitempty" json:"changes,omitempty"`

	// AffectedContracts lists contract names this change touches, in order
	AffectedContracts []string `yaml:"affectedContracts,omitempty" json:"affectedContracts,omitempty"`

	// ExpectedImpact maps component names to the score the author expects
	ExpectedImpact map[string]float64 `yaml:"expectedImpact,omitempty" json:"expectedImpact,omitempty"`
}

// AffectsContract reports whether name is listed in AffectedContracts.
func (s *Specification) AffectsContract(name string) bool {
	for _, c := range s.AffectedContracts {
		if c == name {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a parsed specification.
func (s *Specification) Validate() error {
	if s.Component == "" {
		return raderr.New(raderr.SpecInvalid, "change specification is missing 'component'", nil)
	}
	for name, score := range s.ExpectedImpact {
		if score < 0 || score > 1 {
			return raderr.New(raderr.SpecInvalid,
				fmt.Sprintf("expectedImpact[%s] = %v is outside [0,1]", name, score), nil)
		}
	}
	return nil
}

// Parse decodes a change specification document. Unknown top-level fields
// are rejected at the parse boundary instead of being silently dropped.
func Parse(data []byte) (*Specification, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec Specification
	if err := dec.Decode(&spec); err != nil {
		return nil, raderr.New(raderr.SpecInvalid, "failed to parse change specification", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Load reads and parses a change specification from a YAML file.
func Load(path string) (*Specification, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, raderr.New(raderr.SpecMissing,
				fmt.Sprintf("change specification not found at %s", path), err)
		}
		return nil, raderr.New(raderr.SpecInvalid,
			fmt.Sprintf("failed to read change specification from %s", path), err)
	}
	return Parse(data)
}
