package config

import (
	"fmt"

	"github.com/ayalpani/remotekit/bgserve"
	"github.com/ayalpani/remotekit/buffiter"
	"github.com/ayalpani/remotekit/logger"
)

// ClientConfig bundles the tuning knobs of this kit for one RPC client.
// Projects embed it in their own config structs, or load it standalone with
// Load.
//
// Example:
//
//	type MyConfig struct {
//	    config.ClientConfig `yaml:",inline" mapstructure:",squash"`
//	    Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
//	}
type ClientConfig struct {
	Name        string          `yaml:"name" mapstructure:"name"`
	Environment string          `yaml:"environment" mapstructure:"environment"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Serving     bgserve.Config  `yaml:"serving" mapstructure:"serving"`
	Iteration   buffiter.Config `yaml:"iteration" mapstructure:"iteration"`
}

// ApplyDefaults applies default values to all sections.
func (c *ClientConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Logging.ApplyDefaults()
	c.Serving.ApplyDefaults()
	c.Iteration.ApplyDefaults()
}

// Validate validates all sections.
func (c *ClientConfig) Validate() error {
	validEnvs := []string{"development", "staging", "production"}
	found := false
	for _, v := range validEnvs {
		if c.Environment == v {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config.environment must be one of %v (got: %s)", validEnvs, c.Environment)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Serving.Validate(); err != nil {
		return err
	}
	return c.Iteration.Validate()
}

// Load reads a ClientConfig for the named client, applying defaults and
// validating the result.
func Load(name string, opts ...LoaderOption) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := LoadConfig(name, &cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
