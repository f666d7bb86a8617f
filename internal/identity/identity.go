// Package identity derives the sandbox name for a working directory.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/cespare/xxhash/v2"

	"github.com/firefly-engineering/sb/internal/errors"
)

const (
	// Prefix starts every per-directory sandbox name.
	Prefix = "sandbox-"

	// MaxLength is the longest name the container runtime accepts.
	MaxLength = 64
)

// nameRegex is the container runtime's naming rule.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

// Identity is the validated name of one sandbox environment.
type Identity string

func (id Identity) String() string {
	return string(id)
}

// Validate checks that name is a legal container name:
//   - starts with an ASCII letter or digit
//   - continues with letters, digits, underscores, dots, or hyphens
//   - is at most 64 characters long
func Validate(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid container name %q: must match %s", name, nameRegex.String())
	}
	if len(name) > MaxLength {
		return fmt.Errorf("invalid container name %q: longer than %d characters", name, MaxLength)
	}
	return nil
}

// Resolve returns the identity for the directory at path. Relative paths are
// made absolute first. The same absolute path always yields the same identity.
func Resolve(path string) (Identity, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.InvariantViolation("failed to resolve working directory", err)
	}

	name := Prefix + fmt.Sprintf("%08x", xxhash.Sum64String(abs)&0xffffffff)

	if err := Validate(name); err != nil {
		return "", errors.InvariantViolation("generated sandbox name is invalid", err)
	}

	return Identity(name), nil
}

// Current returns the identity for the process's working directory.
func Current() (Identity, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", "", errors.InvariantViolation("failed to get current directory", err)
	}
	id, err := Resolve(wd)
	if err != nil {
		return "", "", err
	}
	return id, wd, nil
}
