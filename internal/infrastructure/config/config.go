package config

import "github.com/caarlos0/env/v10"

// Config holds environment-sourced defaults for the trx CLI. CLI flags
// (cmd/trx) take precedence over these when both are set; Config only
// supplies what a flag was not given.
type Config struct {
	// Topology selects one of the three dispatcher flavors spec.md §4.5
	// describes: serial, sharded, or actor.
	Topology string `env:"TRX_TOPOLOGY" envDefault:"serial"`

	// Workers bounds the number of shard workers for the sharded topology.
	// 0 defers to runtime.GOMAXPROCS(0) (spec.md §4.5.b).
	Workers int `env:"TRX_WORKERS" envDefault:"0"`

	// Logging
	LogLevel  string `env:"TRX_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"TRX_LOG_FORMAT" envDefault:"json"`

	// MetricsAddr, if non-empty, serves Prometheus metrics on this address
	// for the lifetime of the run (ambient observability; spec.md is silent
	// on it, see SPEC_FULL.md's DOMAIN STACK).
	MetricsAddr string `env:"TRX_METRICS_ADDR" envDefault:""`
}

// Load reads Config from the environment, applying envDefault for anything
// unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
