package testutil

import (
	"testing"

	"github.com/firefly-engineering/sb/internal/config"
)

func TestLoadValidUserConfig(t *testing.T) {
	cfg, err := ValidUserConfig()
	if err != nil {
		t.Fatalf("ValidUserConfig() error: %v", err)
	}

	if cfg.Resources.CPUs != "2" {
		t.Errorf("CPUs = %q, want %q", cfg.Resources.CPUs, "2")
	}
	if cfg.Resources.Memory != "4g" {
		t.Errorf("Memory = %q, want %q", cfg.Resources.Memory, "4g")
	}
	if cfg.Runtime.Command != "podman" {
		t.Errorf("Runtime.Command = %q, want %q", cfg.Runtime.Command, "podman")
	}
	if cfg.Runtime.Compose != "podman-compose" {
		t.Errorf("Runtime.Compose = %q, want %q", cfg.Runtime.Compose, "podman-compose")
	}

	if err := Limits(cfg).Validate(); err != nil {
		t.Errorf("Valid config limits should pass validation: %v", err)
	}
}

func TestLoadInvalidUserConfig(t *testing.T) {
	cfg, err := InvalidUserConfig()
	if err != nil {
		t.Fatalf("InvalidUserConfig() error: %v", err)
	}

	if err := Limits(cfg).Validate(); err == nil {
		t.Error("Invalid config limits should fail validation")
	}
}

func TestLoadProjectEnv(t *testing.T) {
	env, err := ProjectEnv()
	if err != nil {
		t.Fatalf("ProjectEnv() error: %v", err)
	}

	if env[config.EnvCPUs] != "1.5" {
		t.Errorf("%s = %q, want %q", config.EnvCPUs, env[config.EnvCPUs], "1.5")
	}
	if env[config.EnvMemory] != "2048m" {
		t.Errorf("%s = %q, want %q", config.EnvMemory, env[config.EnvMemory], "2048m")
	}
	if len(env) != 2 {
		t.Errorf("len(env) = %d, want 2 (comments are skipped)", len(env))
	}
}

func TestLoadFixture_NotFound(t *testing.T) {
	_, err := LoadFixture("nonexistent.toml")
	if err == nil {
		t.Error("LoadFixture should error for nonexistent file")
	}
}
