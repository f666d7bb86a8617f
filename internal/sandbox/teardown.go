package sandbox

import (
	"context"

	"github.com/firefly-engineering/sb/internal/config"
	"github.com/firefly-engineering/sb/internal/logging"
	"github.com/firefly-engineering/sb/internal/runtime"
)

// Outcome is the result of one teardown step.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// StepResult records one teardown step.
type StepResult struct {
	Step    string
	Outcome Outcome
	Detail  string
	Err     error
}

// Report is the outcome of a teardown, in step order.
type Report struct {
	Hard    bool
	Results []StepResult
}

func (r *Report) add(step string, outcome Outcome, detail string, err error) {
	if err != nil {
		logging.Debug("teardown step failed", "step", step, "error", err)
	}
	r.Results = append(r.Results, StepResult{Step: step, Outcome: outcome, Detail: detail, Err: err})
}

// Failed returns the number of failed steps.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			n++
		}
	}
	return n
}

// Clean removes the fixed sandbox container and image, and with hard also
// the shared home volume. Every step is attempted whatever happened before
// it; failures are recorded in the report, never returned.
func Clean(ctx context.Context, rt runtime.Runtime, hard bool) *Report {
	report := &Report{Hard: hard}

	if !Exists(ctx, rt, config.ContainerName) {
		report.add("container", OutcomeSkipped, "No sandbox container found", nil)
	} else {
		if err := rt.Stop(ctx, config.ContainerName); err != nil {
			report.add("stop", OutcomeFailed, "Failed to stop container", err)
		} else {
			report.add("stop", OutcomeOK, "Container stopped", nil)
		}

		if err := rt.Remove(ctx, config.ContainerName); err != nil {
			report.add("remove", OutcomeFailed, "Failed to remove container", err)
		} else {
			report.add("remove", OutcomeOK, "Container removed", nil)
		}
	}

	if err := rt.RemoveImage(ctx, config.ImageName); err != nil {
		report.add("image", OutcomeFailed, "No sandbox image found or failed to remove", err)
	} else {
		report.add("image", OutcomeOK, "Docker image removed", nil)
	}

	if hard {
		if err := rt.RemoveVolume(ctx, config.VolumeName); err != nil {
			report.add("volume", OutcomeFailed, "No persistent volume found or failed to remove", err)
		} else {
			report.add("volume", OutcomeOK, "Persistent volume removed", nil)
		}
	}

	return report
}
