// Package integration provides a test harness for integration tests
// that require a real container runtime.
//
// Integration tests are skipped unless SB_INTEGRATION_TESTS=1 and docker or
// podman answers a container listing. Sandboxes are created from
// SB_TEST_IMAGE (default alpine:3) with a volume private to each test
// sandbox, so the shared home volume is never touched.
//
// # Test Harness
//
//	func TestMyIntegration(t *testing.T) {
//	    h := integration.NewHarness(t) // Skips if disabled
//
//	    dir, id := h.CreateWorkDir("my-project")
//	    spec := h.Spec(dir, id)
//	    h.TrackSandbox(spec)
//
//	    // Create the sandbox, probe it...
//
//	    // compose down -v runs via t.Cleanup
//	}
//
// # Running Integration Tests
//
//	SB_INTEGRATION_TESTS=1 go test -v ./internal/integration/...
package integration
