package pipedef

import (
	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/pipeline"
)

// Build resolves every stage of d through reg and checks the resulting
// pipeline. Errors carry the failing stage index under Details["index"].
func Build(d *Definition, reg *Registry) (pipeline.Pipeline, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	stages := make(pipeline.Pipeline, 0, len(d.Stages))
	for i, sd := range d.Stages {
		st, err := buildStage(sd, reg)
		if err != nil {
			return nil, atIndex(err, i)
		}
		stages = append(stages, st)
	}
	if err := stages.Validate(); err != nil {
		return nil, err
	}
	return stages, nil
}

func buildStage(sd StageDef, reg *Registry) (pipeline.Stage, error) {
	kind, err := pipeline.ParseKind(sd.Kind)
	if err != nil {
		return nil, err
	}
	factory, err := reg.Lookup(kind, sd.Op)
	if err != nil {
		return nil, err
	}
	st, err := factory(Params{Args: sd.Args, Seed: sd.Seed})
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.InvalidInput("op", sd.Op+" factory returned no stage")
	}
	if st.Kind() != kind {
		return nil, errors.InvalidInput("kind", "operation "+sd.Op+" builds a "+st.Kind().String()+" stage, declared "+kind.String()).
			WithDetails(map[string]any{"declared": kind.String(), "built": st.Kind().String()})
	}
	return st, nil
}

func atIndex(err error, i int) error {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Clone().WithDetail("index", i)
	}
	return err
}
