// Package config provides the fixed names and the merged configuration for sb.
//
// # Fixed Names
//
// The clean command always targets the same three artifacts, whatever the
// working directory:
//
//	ContainerName = "sandbox"
//	ImageName     = "sandbox"
//	VolumeName    = "sandbox-home"
//
// # Resource Limits
//
// ResourceLimits are read when a sandbox is created and never afterwards.
// Sources, highest precedence first:
//
//   - SB_CPUS / SB_MEMORY in the process environment
//   - the same keys in <workdir>/.sandbox/sb.env
//   - [resources] in $XDG_CONFIG_HOME/sb/config.toml
//   - "4" CPUs and "8g" memory
//
// SB_RUNTIME and [runtime] command pick the container CLI the same way.
//
// # Validation
//
// Load validates the merged limits and returns an errors.ConfigError when a
// value is malformed.
package config
