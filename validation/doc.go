// Package validation checks pipeline descriptions, benchmark options and
// configuration before they are used.
//
// Struct tag validation reports field names by their yaml (or json) tag,
// so messages match the documents users write:
//
//	type StageDef struct {
//	    Kind string `yaml:"kind" validate:"required,stagekind"`
//	    Op   string `yaml:"op" validate:"required"`
//	}
//	err := validation.Validate(def)
//
// Programmatic validation collects errors across several checks:
//
//	v := validation.New()
//	v.Min("n", opts.N, 4).Min("repeat", opts.Repeat, 1)
//	err := v.Validate()
//
// Both forms return *errors.AppError with code VALIDATION_ERROR and the
// offending fields under Details["fields"].
package validation
