package main

import (
	"os"

	"github.com/firefly-engineering/sb/cmd"
	"github.com/firefly-engineering/sb/internal/errors"
	"github.com/firefly-engineering/sb/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.IsExitStatus(err) {
			logging.UserError("%v", err)
		}
		os.Exit(errors.GetExitCode(err))
	}
}
