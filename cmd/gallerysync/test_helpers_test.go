package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	mappingFile string
	siteDir     string
}

// setupCLITestEnv isolates HOME so the default config location stays inside
// the test sandbox, and writes a config pointing every path at temp dirs.
func setupCLITestEnv(t *testing.T, baseURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "config.toml"),
		mappingFile: filepath.Join(base, "mapping.json"),
		siteDir:     filepath.Join(base, "site"),
	}

	content := fmt.Sprintf(`[paths]
mapping_file = %q
site_dir = %q

[cloudinary]
cloud_name = "demo"
folder_prefix = "archived-events"
base_url = %q
page_size = 10
request_timeout = 5
retry_attempts = 1

[logging]
format = "json"
level = "error"
`, env.mappingFile, env.siteDir, baseURL)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output missing %q:\n%s", needle, haystack)
	}
}

// newMediaHost serves a single-page resource listing for one folder prefix.
func newMediaHost(t *testing.T, urls []string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var sb strings.Builder
		sb.WriteString(`{"resources": [`)
		for i, u := range urls {
			if i > 0 {
				sb.WriteString(",")
			}
			fmt.Fprintf(&sb, `{"secure_url": %q}`, u)
		}
		sb.WriteString(`], "next_cursor": ""}`)
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(sb.String())); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}
