// Package sandbox decides what state a directory's sandbox is in and drives
// it to an attached session, or tears the shared sandbox artifacts down.
//
// # State
//
// Probe derives the State from two listings, `ps -a` and `ps`:
//
//	not listed by ps -a        -> StateAbsent
//	listed by ps -a, not by ps -> StateStopped
//	listed by both             -> StateRunning
//
// A listing that fails counts as "not listed".
//
// # Lifecycle
//
// Plan maps a State to the runtime steps needed before attaching:
//
//	StateAbsent  -> create, attach
//	StateStopped -> start, attach
//	StateRunning -> attach
//
// Controller.Shell and Controller.Run execute the plan. Run sanitizes the
// forwarded arguments before touching the runtime. Both return the attached
// process's exit code.
//
// # Teardown
//
// Clean removes the fixed "sandbox" container and image, plus the
// "sandbox-home" volume when hard is set. Each step is best-effort and
// recorded in the returned Report.
package sandbox
