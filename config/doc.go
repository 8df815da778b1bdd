// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the service configuration: listen
// address and timeouts, the model artifact to load, logging and metrics.
package config
