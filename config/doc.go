// Package config loads pipey configuration from a YAML file, an optional
// .env file and the process environment.
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("pipey", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithDefaults(map[string]any{"bench.n": 100000}),
//	)
//
// Precedence, lowest first: defaults, config file, environment. Environment
// variables use the service name as prefix with underscore-separated paths,
// so PIPEY_LOGGING_LEVEL=debug sets logging.level.
package config
