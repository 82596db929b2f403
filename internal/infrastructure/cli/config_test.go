package cli

import (
	"os"
	"strings"
	"testing"
)

func TestConfigInitAndShow(t *testing.T) {
	withTestEnv(t, "http://127.0.0.1:1/v1/completions", "")
	t.Cleanup(func() {
		configForce = false
		_ = configInitCmd.Flags().Set("force", "false")
	})

	out, err := runCLI(t, "config", "init", "--config", configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if _, err := runCLI(t, "config", "init", "--config", configPath); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, err := runCLI(t, "config", "init", "--config", configPath, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}

	out, err = runCLI(t, "config", "show", "--config", configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "max_tokens: 100") {
		t.Errorf("show missing max_tokens: %q", out)
	}
	if !strings.Contains(out, "credential: missing") {
		t.Errorf("show should report missing credential: %q", out)
	}
}
