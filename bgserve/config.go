package bgserve

import (
	"time"

	"github.com/ayalpani/remotekit/validation"
)

// Config tunes the serving loop.
type Config struct {
	// ServeInterval bounds how long one pump waits for inbound traffic.
	// Zero drains whatever is already pending without waiting for more.
	ServeInterval time.Duration `yaml:"serve_interval" mapstructure:"serve_interval" validate:"min=0"`
	// SleepInterval is how long the worker sleeps between pumps to reduce
	// contention on the connection.
	SleepInterval time.Duration `yaml:"sleep_interval" mapstructure:"sleep_interval" validate:"min=0"`
}

// DefaultConfig returns the default loop timing.
func DefaultConfig() Config {
	return Config{
		ServeInterval: 0,
		SleepInterval: 100 * time.Millisecond,
	}
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.SleepInterval == 0 {
		c.SleepInterval = 100 * time.Millisecond
	}
}

// Validate checks the loop timing.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
