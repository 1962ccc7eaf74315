package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/pipey/bootstrap"
	"github.com/kbukum/pipey/config"
	"github.com/kbukum/pipey/pipeline"
)

// cli carries state shared by every subcommand of one invocation.
type cli struct {
	configFile string
	logLevel   string

	app *bootstrap.App[*Config]
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "pipey",
		Short: "Compose and run lazy map/filter/window/reduce pipelines",
		Long: `pipey applies ordered stage pipelines to integer sequences.

Pipelines are described in YAML, naming each stage by kind and operation:

  stages:
    - {kind: map, op: mul, args: [2]}
    - {kind: filter, op: gt, args: [5]}
    - {kind: reduce, op: sum}

Examples:
  pipey run --file pipeline.yaml --from 0 --to 10
  pipey examples
  pipey bench --n 100000 --json`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: searched as cmd/pipey/config.yml, config/config.yml, config.yml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override logging.level (debug, info, warn, error, disabled)")

	root.AddCommand(
		newRunCmd(c),
		newBenchCmd(c),
		newExamplesCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and initializes logging.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	opts := []config.LoaderOption{config.WithDefaults(defaults())}
	if c.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.configFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	c.app = app
	return nil
}

// runTask runs task inside the app lifecycle with telemetry wired in when
// enabled. obs is nil when telemetry is off.
func (c *cli) runTask(cmd *cobra.Command, task func(ctx context.Context, obs pipeline.Observer) error) error {
	var obs pipeline.Observer
	c.app.OnStart(func(ctx context.Context) error {
		o, err := setupTelemetry(ctx, c.app)
		obs = o
		return err
	})
	return c.app.RunTask(cmd.Context(), func(ctx context.Context) error {
		return task(ctx, obs)
	})
}

// pipelineOptions returns executor options for obs.
func (c *cli) pipelineOptions(obs pipeline.Observer) []pipeline.Option {
	opts := []pipeline.Option{pipeline.WithLogger(c.app.Logger.WithComponent("pipeline"))}
	if obs != nil {
		opts = append(opts, pipeline.WithObserver(obs))
	}
	return opts
}
