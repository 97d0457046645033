// Package config loads and merges timeshelf configuration from environment
// variables, command-line flags, and an optional JSON file. The merged
// structured config is narrowed into client- and server-specific views that
// are passed explicitly into constructors; nothing reads configuration from a
// process-wide singleton.
package config
