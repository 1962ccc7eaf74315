package main

import (
	"time"

	"github.com/kbukum/pipey/config"
	"github.com/kbukum/pipey/observability"
	"github.com/kbukum/pipey/validation"
)

const serviceName = "pipey"

// Config is the pipey command configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Telemetry            TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Bench                BenchConfig     `yaml:"bench" mapstructure:"bench"`
}

// TelemetryConfig controls trace and metric export for pipeline runs.
type TelemetryConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Exporter   string        `yaml:"exporter" mapstructure:"exporter"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// BenchConfig holds defaults for the bench command.
type BenchConfig struct {
	N      int `yaml:"n" mapstructure:"n"`
	Repeat int `yaml:"repeat" mapstructure:"repeat"`
	Warmup int `yaml:"warmup" mapstructure:"warmup"`
}

// defaults are applied beneath the config file and environment.
func defaults() map[string]any {
	return map[string]any{
		"name":                  serviceName,
		"logging.level":         "warn",
		"telemetry.exporter":    observability.ExporterOTLP,
		"telemetry.endpoint":    "localhost:4318",
		"telemetry.insecure":    true,
		"telemetry.sample_rate": 1.0,
		"telemetry.interval":    "15s",
		"bench.n":               200_000,
		"bench.repeat":          7,
		"bench.warmup":          2,
	}
}

// ApplyDefaults fills fields left empty by an explicit zero value.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Telemetry.Exporter == "" {
		c.Telemetry.Exporter = observability.ExporterOTLP
	}
}

// Validate checks the service, telemetry and bench sections.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	v := validation.New().
		OneOf("telemetry.exporter", c.Telemetry.Exporter, []string{observability.ExporterOTLP, observability.ExporterStdout}).
		Between("telemetry.sample_rate", c.Telemetry.SampleRate, 0, 1).
		Min("bench.n", c.Bench.N, 4).
		Min("bench.repeat", c.Bench.Repeat, 1).
		Min("bench.warmup", c.Bench.Warmup, 0)
	if c.Telemetry.Enabled && c.Telemetry.Exporter == observability.ExporterOTLP {
		v.Required("telemetry.endpoint", c.Telemetry.Endpoint)
	}
	return v.Validate()
}
