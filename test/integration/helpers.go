//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIEndpoint string
	APIKey      string
	EconPath    string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("ECON_INTEGRATION_API"),
		APIKey:      os.Getenv("ECON_INTEGRATION_API_KEY"),
		EconPath:    getEconPath(),
		Verbose:     os.Getenv("ECON_VERBOSE") == "true",
	}
}

// getEconPath determines the path to the econ binary
func getEconPath() string {
	if path := os.Getenv("ECON_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../econ",
		"./econ",
		"../econ",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "econ"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIEndpoint == "" {
		t.Skip("ECON_INTEGRATION_API not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.EconPath); err != nil {
		t.Skipf("econ binary not found at %s, skipping integration test", config.EconPath)
	}
}

// CommandRunner runs the econ binary against the configured API with an
// isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: t.TempDir() + "/config.yml",
		t:          t,
	}
}

// Run executes an econ command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{
		"--config", runner.configFile,
		"--api", runner.config.APIEndpoint,
		"--no-color",
	}, args...)

	if runner.config.APIKey != "" {
		full = append(full, "--api-key", runner.config.APIKey)
	}

	// #nosec G204 -- test harness runs the binary under test
	cmd := exec.Command(runner.config.EconPath, full...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.EconPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a command with JSON output and decodes it into out.
func (runner *CommandRunner) RunJSON(out any, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		runner.t.Logf("stderr: %s", stderr)

		return err
	}

	return json.Unmarshal([]byte(stdout), out)
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}
