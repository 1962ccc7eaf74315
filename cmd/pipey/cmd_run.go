package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/pipedef"
	"github.com/kbukum/pipey/pipeline"
)

type runFlags struct {
	file     string
	dir      []string
	from, to int
	limit    int
	asJSON   bool
}

// runOutput is the JSON form of a run.
type runOutput struct {
	Name     string `json:"name"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	Reduced  bool   `json:"reduced"`
	Value    any    `json:"value,omitempty"`
	Elements []any  `json:"elements,omitempty"`
}

func newRunCmd(c *cli) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Apply a pipeline description to an integer range",
		Long: `Apply a YAML pipeline description to the integers in [from, to).

The description is read from --file, or found by name in the --dir
directories as {name}.yaml or {name}.yml. When the description sets
"expect", the reduced value is checked against it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := f.definition(args)
			if err != nil {
				return err
			}
			stages, err := pipedef.Build(def, pipedef.Builtins())
			if err != nil {
				return err
			}
			return c.runTask(cmd, func(ctx context.Context, obs pipeline.Observer) error {
				out, err := execute(ctx, def, stages, f, c.pipelineOptions(obs))
				if err != nil {
					return err
				}
				if f.asJSON {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				printRun(newPrinter(cmd.OutOrStdout()), def, out)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "pipeline description file")
	cmd.Flags().StringSliceVar(&f.dir, "dir", []string{"."}, "directories searched for a named description")
	cmd.Flags().IntVar(&f.from, "from", 0, "first input integer")
	cmd.Flags().IntVar(&f.to, "to", 10, "end of the input range (exclusive)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "print at most this many elements of a stream result (0 prints all)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "write the result as JSON")
	return cmd
}

func (f *runFlags) definition(args []string) (*pipedef.Definition, error) {
	switch {
	case f.file != "" && len(args) > 0:
		return nil, errors.InvalidInput("name", "use either --file or a name, not both")
	case f.file != "":
		return pipedef.Load(f.file)
	case len(args) == 1:
		return pipedef.NewFileLoader(f.dir...).Load(args[0])
	default:
		return nil, errors.InvalidInput("name", "a description name or --file is required")
	}
}

func execute(ctx context.Context, def *pipedef.Definition, stages pipeline.Pipeline, f *runFlags, opts []pipeline.Option) (*runOutput, error) {
	res, err := pipeline.Apply(ctx, pipeline.Range(f.from, f.to), stages, opts...)
	if err != nil {
		return nil, err
	}
	out := &runOutput{Name: def.Name, From: f.from, To: f.to, Reduced: res.Reduced()}
	if res.Reduced() {
		out.Value = res.Value()
		return out, def.Check(out.Value)
	}

	seq := res.Iter()
	if f.limit > 0 {
		seq = pipeline.Limit(seq, f.limit)
	}
	out.Elements, err = pipeline.Collect(ctx, seq)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func printRun(p *printer, def *pipedef.Definition, out *runOutput) {
	p.Title(def.Name)
	if def.Description != "" {
		p.Muted(def.Description)
	}
	for i, s := range def.Stages {
		p.Field(fmt.Sprintf("step %d", i+1), s)
	}
	p.Field("input", fmt.Sprintf("[%d, %d)", out.From, out.To))
	if out.Reduced {
		p.Field("result", out.Value)
		if def.Expect != nil {
			p.Status(true, fmt.Sprintf("matches expected %d", *def.Expect))
		}
		return
	}
	p.Field("elements", len(out.Elements))
	for _, e := range out.Elements {
		p.Line(fmt.Sprintf("    %v", e))
	}
}
