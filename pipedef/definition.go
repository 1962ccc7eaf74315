package pipedef

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/validation"
)

// Definition is a named, ordered list of stages.
type Definition struct {
	// Name identifies the description.
	Name string `yaml:"name" validate:"required"`
	// Description is free text shown by the CLI.
	Description string `yaml:"description,omitempty"`
	// Stages are applied in order.
	Stages []StageDef `yaml:"stages" validate:"min=1,dive"`
	// Expect is the reduced value the description should produce, if known.
	Expect *int `yaml:"expect,omitempty"`
}

// Check compares a reduced value with Expect. It passes when Expect is unset.
func (d *Definition) Check(value any) error {
	if d.Expect == nil {
		return nil
	}
	if got, ok := value.(int); !ok || got != *d.Expect {
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("%s: got %v, expected %d", d.Name, value, *d.Expect)).
			WithDetails(map[string]any{"got": value, "want": *d.Expect})
	}
	return nil
}

// StageDef describes one stage.
type StageDef struct {
	// Kind is map, filter, reduce or window.
	Kind string `yaml:"kind" validate:"required,stagekind"`
	// Op is the registered operation name.
	Op string `yaml:"op" validate:"required"`
	// Args are passed to the operation factory.
	Args []int `yaml:"args,omitempty"`
	// Seed makes a reduce stage seeded.
	Seed *int `yaml:"seed,omitempty"`
}

// String renders the stage as "kind: op(args) seed=n".
func (s StageDef) String() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(s.Kind))
	b.WriteString(": ")
	b.WriteString(s.Op)
	if len(s.Args) > 0 {
		args := make([]string, len(s.Args))
		for i, a := range s.Args {
			args[i] = strconv.Itoa(a)
		}
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	if s.Seed != nil {
		fmt.Fprintf(&b, " seed=%d", *s.Seed)
	}
	return b.String()
}

// Validate checks required fields and stage kinds.
func (d *Definition) Validate() error {
	return validation.Validate(d)
}

// Parse decodes and validates a YAML description.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.InvalidInput("description", "malformed YAML").WithCause(err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads and parses a description file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("description", path).WithCause(err)
		}
		return nil, errors.Internal(err).WithDetail("path", path)
	}
	d, err := Parse(data)
	if err != nil {
		if appErr, ok := errors.AsAppError(err); ok {
			return nil, appErr.Clone().WithDetail("path", path)
		}
		return nil, err
	}
	return d, nil
}
