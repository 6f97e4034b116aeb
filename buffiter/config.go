package buffiter

import (
	"github.com/ayalpani/remotekit/errors"
	"github.com/ayalpani/remotekit/validation"
)

// Config tunes the batch-size schedule of a buffered iterator.
type Config struct {
	// Chunk is the initial batch size.
	Chunk int `yaml:"chunk" mapstructure:"chunk" validate:"min=1"`
	// MaxChunk caps the batch size.
	MaxChunk int `yaml:"max_chunk" mapstructure:"max_chunk" validate:"min=1"`
	// Factor multiplies the batch size after every fetch. Must be >= 1.
	Factor float64 `yaml:"factor" mapstructure:"factor" validate:"gte=1"`
}

// DefaultConfig returns the default batch schedule.
func DefaultConfig() Config {
	return Config{Chunk: 10, MaxChunk: 1000, Factor: 2}
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Chunk == 0 {
		c.Chunk = 10
	}
	if c.MaxChunk == 0 {
		c.MaxChunk = 1000
	}
	if c.Factor == 0 {
		c.Factor = 2
	}
}

// Validate checks the batch schedule. It never performs network I/O.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.MaxChunk < c.Chunk {
		return errors.InvalidConfig("max_chunk", "must be >= chunk")
	}
	return nil
}
