package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// completionServer serves text as the first choice and counts requests.
func completionServer(t *testing.T, text string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]string{{"text": text}},
		})
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

// withTestEnv points the CLI at endpoint with apiKey and an empty config dir.
func withTestEnv(t *testing.T, endpoint, apiKey string) {
	t.Helper()
	t.Setenv("HASHDRAFT_ENDPOINT", endpoint)
	t.Setenv("OPENAI_API_KEY", apiKey)
	t.Setenv("HASHDRAFT_MODEL", "")
	t.Setenv("HASHDRAFT_PROVIDER", "")

	oldConfig, oldLevel := configPath, logLevel
	configPath = filepath.Join(t.TempDir(), "hashdraft.yaml")
	logLevel = "error"
	t.Cleanup(func() {
		configPath, logLevel = oldConfig, oldLevel
	})
}

// runCLI executes the root command with args and captures stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return out.String(), err
}
