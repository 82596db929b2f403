package cli

import (
	"errors"
	"os"
	"testing"
)

func TestExecute(t *testing.T) {
	old := os.Args
	defer func() { os.Args = old }()

	// Help
	os.Args = []string{"hashdraft", "--help"}
	if err := Execute(); err != nil {
		t.Errorf("Execute failed: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Error("nil error should exit 0")
	}
	if ExitCode(errors.New("x")) != 1 {
		t.Error("plain error should exit 1")
	}
	e := NewCLIError("m", "h", nil)
	e.ExitCode = 2
	if ExitCode(e) != 2 {
		t.Error("CLIError exit code not honored")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", ""} {
		if newLogger(lvl, os.Stderr) == nil {
			t.Errorf("nil logger for %q", lvl)
		}
	}
}

func TestSkippedServers(t *testing.T) {
	t.Setenv("HASHDRAFT_SKIP_TUI_RUN", "true")
	t.Setenv("HASHDRAFT_SKIP_MCP_START", "true")
	t.Setenv("HASHDRAFT_SKIP_SERVE_START", "true")

	for _, cmd := range []string{"tui", "mcp", "serve"} {
		if _, err := runCLI(t, cmd); err != nil {
			t.Errorf("%s: %v", cmd, err)
		}
	}
}
