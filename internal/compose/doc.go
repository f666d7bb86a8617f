// Package compose creates sandboxes from a generated compose file.
//
// The file is rendered from an embedded template, parsed back with yaml.v3
// and checked against the Spec it came from, then written to
//
//	<workdir>/.sandbox/.docker-compose-<name>.yml
//
// and brought up with `compose -f <file> -p <name> up -d`. Using the sandbox
// name as the compose project name keeps sandboxes of different directories
// apart even though every file lives in a directory called .sandbox.
//
// Each sandbox gets:
//   - the working directory bind-mounted at /workspace
//   - the shared sandbox-home volume mounted at /home/agent
//   - CPU and memory limits from config.ResourceLimits
package compose
