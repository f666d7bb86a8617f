package cmd

import (
	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/logging"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logWarning = logging.UserWarning
)

// exitWith turns the result of an attached session into the command's
// error. A non-zero exit code is relayed through errors.ExitStatus so main
// exits with it silently.
func exitWith(code int, err error) error {
	if err != nil {
		return err
	}
	if code != errors.ExitSuccess {
		return errors.ExitStatus(code)
	}
	return nil
}
