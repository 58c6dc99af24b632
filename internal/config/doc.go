// Package config defines the application configuration structure and loads it
// from the environment and an optional YAML file via viper. Loaded values are
// validated with struct tags before the application starts.
package config
