package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/logging"
)

// Fixed names shared by every sandbox on the host.
const (
	// ContainerName is the container the clean command removes.
	ContainerName = "sandbox"
	// ImageName is the image every sandbox runs and clean removes.
	ImageName = "sandbox"
	// VolumeName is the shared home volume mounted into every sandbox.
	VolumeName = "sandbox-home"

	// EntryScript is the launcher inside the image.
	EntryScript = "/usr/local/bin/sandbox.sh"
	// ClaudeCommand is the first argument EntryScript receives for `sb claude`.
	ClaudeCommand = "claude"
)

const (
	DefaultCPUs   = "4"
	DefaultMemory = "8g"

	EnvCPUs    = "SB_CPUS"
	EnvMemory  = "SB_MEMORY"
	EnvRuntime = "SB_RUNTIME"

	// ProjectDir holds per-directory sb files inside the working directory.
	ProjectDir = ".sandbox"
	// ProjectEnvFile is a dotenv file inside ProjectDir.
	ProjectEnvFile = "sb.env"
	// UserConfigFile is the TOML file inside the user config directory.
	UserConfigFile = "config.toml"
)

var (
	cpusRegex   = regexp.MustCompile(`^([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	memoryRegex = regexp.MustCompile(`^([0-9]+(\.[0-9]+)?) ?[kKmMgGtTpP]?[iI]?[bB]?$`)
)

// ResourceLimits are applied when a sandbox is created.
type ResourceLimits struct {
	CPUs   string
	Memory string
}

// DefaultLimits returns the limits used when nothing overrides them.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{CPUs: DefaultCPUs, Memory: DefaultMemory}
}

// Validate checks that CPUs is a positive decimal and Memory a positive size
// in the units compose accepts, such as 512m, 1.5g, 2GiB or 8GB.
func (r ResourceLimits) Validate() error {
	if !cpusRegex.MatchString(r.CPUs) {
		return fmt.Errorf("cpus %q must be a positive decimal number", r.CPUs)
	}
	if v, err := strconv.ParseFloat(r.CPUs, 64); err != nil || v <= 0 {
		return fmt.Errorf("cpus %q must be greater than zero", r.CPUs)
	}

	m := memoryRegex.FindStringSubmatch(r.Memory)
	if m == nil {
		return fmt.Errorf("memory %q must be a size such as 512m, 1.5g or 2GiB", r.Memory)
	}
	if v, err := strconv.ParseFloat(m[1], 64); err != nil || v <= 0 {
		return fmt.Errorf("memory %q must be greater than zero", r.Memory)
	}
	return nil
}

// RuntimeConfig selects the container runtime CLI.
type RuntimeConfig struct {
	// Command is the runtime binary, "docker" or "podman". Empty means detect.
	Command string `toml:"command"`
	// Compose is a standalone compose binary such as "docker-compose".
	// Empty means the runtime's own "compose" subcommand.
	Compose string `toml:"compose"`
}

// UserConfig is the optional per-user TOML file.
//
//	[resources]
//	cpus = "2"
//	memory = "4g"
//
//	[runtime]
//	command = "podman"
type UserConfig struct {
	Resources struct {
		CPUs   string `toml:"cpus"`
		Memory string `toml:"memory"`
	} `toml:"resources"`
	Runtime RuntimeConfig `toml:"runtime"`
}

// Config is the merged configuration for one invocation.
type Config struct {
	Limits  ResourceLimits
	Runtime RuntimeConfig

	// Origins records where each limit came from, keyed by "cpus" and "memory".
	Origins map[string]string
}

// UserConfigPath returns $XDG_CONFIG_HOME/sb/config.toml, falling back to
// ~/.config/sb/config.toml.
func UserConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sb", UserConfigFile)
}

// ProjectEnvPath returns the dotenv file for workdir.
func ProjectEnvPath(workdir string) string {
	return filepath.Join(workdir, ProjectDir, ProjectEnvFile)
}

// LoadUserConfig reads the TOML file at path. A missing file is not an error.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for _, key := range meta.Undecoded() {
		logging.Warn("unknown key in user config", "file", path, "key", key.String())
	}

	return cfg, nil
}

// LoadProjectEnv reads the dotenv file for workdir. A missing file yields an
// empty map.
func LoadProjectEnv(workdir string) (map[string]string, error) {
	path := ProjectEnvPath(workdir)
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return env, nil
}

// LoadFrom merges and validates configuration for workdir. Highest
// precedence first:
//   - process environment (SB_CPUS, SB_MEMORY, SB_RUNTIME)
//   - <workdir>/.sandbox/sb.env
//   - the user config file at userConfigPath
//   - defaults
func LoadFrom(workdir, userConfigPath string) (*Config, error) {
	cfg, err := merge(workdir, userConfigPath)
	if err != nil {
		return nil, err
	}

	if err := cfg.Limits.Validate(); err != nil {
		return nil, errors.ConfigError("invalid resource limits", err)
	}

	logging.Debug("loaded config",
		"cpus", cfg.Limits.CPUs, "cpus_from", cfg.Origins["cpus"],
		"memory", cfg.Limits.Memory, "memory_from", cfg.Origins["memory"],
		"runtime", cfg.Runtime.Command)

	return cfg, nil
}

// RuntimeFrom returns only the runtime selection. Resource limits are not
// validated, so a bad SB_MEMORY does not prevent attaching to an existing
// sandbox.
func RuntimeFrom(workdir, userConfigPath string) (RuntimeConfig, error) {
	cfg, err := merge(workdir, userConfigPath)
	if err != nil {
		return RuntimeConfig{}, err
	}
	return cfg.Runtime, nil
}

func merge(workdir, userConfigPath string) (*Config, error) {
	user, err := LoadUserConfig(userConfigPath)
	if err != nil {
		return nil, errors.ConfigError("invalid user config", err)
	}

	project, err := LoadProjectEnv(workdir)
	if err != nil {
		return nil, errors.ConfigError("invalid project env file", err)
	}

	cfg := &Config{
		Limits:  DefaultLimits(),
		Runtime: user.Runtime,
		Origins: map[string]string{"cpus": "default", "memory": "default"},
	}

	layer := func(key, value, origin string, dst *string) {
		if value == "" {
			return
		}
		*dst = value
		cfg.Origins[key] = origin
	}

	layer("cpus", user.Resources.CPUs, userConfigPath, &cfg.Limits.CPUs)
	layer("memory", user.Resources.Memory, userConfigPath, &cfg.Limits.Memory)

	projectPath := ProjectEnvPath(workdir)
	layer("cpus", project[EnvCPUs], projectPath, &cfg.Limits.CPUs)
	layer("memory", project[EnvMemory], projectPath, &cfg.Limits.Memory)
	if v := project[EnvRuntime]; v != "" {
		cfg.Runtime.Command = v
	}

	layer("cpus", os.Getenv(EnvCPUs), "env "+EnvCPUs, &cfg.Limits.CPUs)
	layer("memory", os.Getenv(EnvMemory), "env "+EnvMemory, &cfg.Limits.Memory)
	if v := os.Getenv(EnvRuntime); v != "" {
		cfg.Runtime.Command = v
	}

	return cfg, nil
}
