// Package config loads remotekit client configuration from YAML files and
// environment variables. Each component package owns its Config struct with
// ApplyDefaults and Validate; this package finds the files, binds the
// environment and unmarshals into those structs.
package config
