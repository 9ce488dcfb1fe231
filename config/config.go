// Package config loads environment-variable driven defaults for a
// [corobus.Bus]: default channel capacity, an optional channel-count
// ceiling, and the broadcast/batch feature toggles. It uses
// github.com/caarlos0/env/v11 for the struct-tag binding rather than a
// hand-rolled reflection walk.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/arsbeglov/corobus"
)

// BusConfig mirrors the subset of corobus.Option that makes sense to
// source from the environment: policy knobs, not runtime collaborators
// like a Logger or MetricsCollector.
type BusConfig struct {
	// DefaultCapacity is the capacity callers should use for Open calls
	// that don't have an application-specific size in mind. It is not
	// enforced by the Bus itself; it's a convenience default for callers
	// of this package.
	DefaultCapacity int `env:"COROBUS_DEFAULT_CAPACITY" envDefault:"16"`

	// MaxChannels caps the number of simultaneously open channels. 0 means
	// unbounded.
	MaxChannels int `env:"COROBUS_MAX_CHANNELS" envDefault:"0"`

	// DisableBroadcast, if true, constructs the Bus with WithoutBroadcast.
	DisableBroadcast bool `env:"COROBUS_DISABLE_BROADCAST" envDefault:"false"`

	// DisableBatch, if true, constructs the Bus with WithoutBatch.
	DisableBatch bool `env:"COROBUS_DISABLE_BATCH" envDefault:"false"`
}

// Load reads a BusConfig from the environment, applying the envDefault tags
// for anything unset.
func Load() (BusConfig, error) {
	var cfg BusConfig
	if err := env.Parse(&cfg); err != nil {
		return BusConfig{}, err
	}
	return cfg, nil
}

// Options translates the loaded config into corobus.Option values, ready
// to pass to corobus.NewBus.
func (c BusConfig) Options() []corobus.Option {
	opts := make([]corobus.Option, 0, 3)
	if c.MaxChannels > 0 {
		opts = append(opts, corobus.WithMaxChannels(c.MaxChannels))
	}
	if c.DisableBroadcast {
		opts = append(opts, corobus.WithoutBroadcast())
	}
	if c.DisableBatch {
		opts = append(opts, corobus.WithoutBatch())
	}
	return opts
}
