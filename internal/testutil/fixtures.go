package testutil

import (
	"bytes"
	"embed"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/firefly-engineering/sb/internal/config"
)

//go:embed fixtures/*.toml fixtures/*.env
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// LoadUserConfigFixture decodes a TOML user config fixture.
func LoadUserConfigFixture(name string) (*config.UserConfig, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	var cfg config.UserConfig
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadProjectEnvFixture parses a dotenv project fixture.
func LoadProjectEnvFixture(name string) (map[string]string, error) {
	data, err := LoadFixture(name)
	if err != nil {
		return nil, err
	}
	return godotenv.Parse(bytes.NewReader(data))
}

// ValidUserConfig returns the valid user config fixture.
func ValidUserConfig() (*config.UserConfig, error) {
	return LoadUserConfigFixture("valid_config.toml")
}

// InvalidUserConfig returns the user config fixture with bad limits.
func InvalidUserConfig() (*config.UserConfig, error) {
	return LoadUserConfigFixture("invalid_config.toml")
}

// ProjectEnv returns the project env fixture.
func ProjectEnv() (map[string]string, error) {
	return LoadProjectEnvFixture("project.env")
}

// Limits returns the resource limits a user config sets.
func Limits(cfg *config.UserConfig) config.ResourceLimits {
	return config.ResourceLimits{CPUs: cfg.Resources.CPUs, Memory: cfg.Resources.Memory}
}
