package main

import (
	"context"
	"embed"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipey/pipedef"
	"github.com/kbukum/pipey/pipeline"
)

//go:embed examples/*.yaml
var exampleFS embed.FS

// exampleInput is the input every bundled example runs over.
var exampleInput = []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

func newExamplesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "Run the bundled example pipelines",
		Long: `Run the bundled example pipelines over 0..9, printing each step,
the result and the expected value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := loadExamples()
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			return c.runTask(cmd, func(ctx context.Context, obs pipeline.Observer) error {
				reg := pipedef.Builtins()
				for i, def := range defs {
					if i > 0 {
						p.Line("")
					}
					if err := runExample(ctx, p, def, reg, c.pipelineOptions(obs)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func loadExamples() ([]*pipedef.Definition, error) {
	entries, err := exampleFS.ReadDir("examples")
	if err != nil {
		return nil, err
	}
	defs := make([]*pipedef.Definition, 0, len(entries))
	for _, e := range entries {
		data, err := exampleFS.ReadFile(path.Join("examples", e.Name()))
		if err != nil {
			return nil, err
		}
		def, err := pipedef.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func runExample(ctx context.Context, p *printer, def *pipedef.Definition, reg *pipedef.Registry, opts []pipeline.Option) error {
	stages, err := pipedef.Build(def, reg)
	if err != nil {
		return err
	}
	p.Title(def.Name)
	if def.Description != "" {
		p.Muted(def.Description)
	}
	for i, s := range def.Stages {
		p.Field(fmt.Sprintf("step %d", i+1), s)
	}
	p.Field("input", fmt.Sprint(exampleInput))

	got, err := pipeline.Run[int, int](ctx, pipeline.FromSlice(exampleInput), stages, opts...)
	if err != nil {
		return err
	}
	p.Field("result", got)
	if def.Expect != nil {
		p.Field("expected", *def.Expect)
	}
	if err := def.Check(got); err != nil {
		p.Status(false, "MISMATCH")
		return err
	}
	p.Status(true, "OK")
	return nil
}
