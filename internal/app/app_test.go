package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/claimsdesk/fnol/internal/config"
	"github.com/claimsdesk/fnol/internal/session"
)

const claimJSON = `{"extractedFields":{"claimType":"injury"},"missingFields":["policyNumber"],"recommendedRoute":"Route to Specialist","reasoning":"Injury claim requires specialist review"}`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claim1.txt")
	if err := os.WriteFile(path, []byte("FNOL\nPolicy: n/a\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestProcessFile_SucceedsAndExports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(claimJSON))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Apply(config.Overrides{BackendURL: srv.URL, ExportDir: t.TempDir()})
	controller, client, err := NewController(cfg)
	if err != nil || controller == nil {
		t.Fatalf("NewController returned error: %v", err)
	}

	report, err := ProcessFile(context.Background(), cfg, client, writeDoc(t), true)
	if err != nil {
		t.Fatalf("ProcessFile returned error: %v", err)
	}
	if report.State.Phase() != session.PhaseSucceeded {
		t.Fatalf("phase = %s, want succeeded (error %q)", report.State.Phase(), report.State.LastError)
	}
	if report.State.Tone() != session.ToneInfo {
		t.Fatalf("tone = %s, want info", report.State.Tone())
	}
	want := filepath.Join(cfg.ExportDir, session.ExportFileName)
	if report.ExportPath != want {
		t.Fatalf("ExportPath = %q, want %q", report.ExportPath, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != report.State.RawText {
		t.Fatalf("export does not match raw text")
	}
}

func TestProcessFile_RemoteFailureIsReportedInState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Apply(config.Overrides{BackendURL: srv.URL, ExportDir: t.TempDir()})
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	report, err := ProcessFile(context.Background(), cfg, client, writeDoc(t), true)
	if err != nil {
		t.Fatalf("ProcessFile returned error: %v", err)
	}
	if report.State.LastError != "API Error (500): boom" {
		t.Fatalf("LastError = %q", report.State.LastError)
	}
	if report.ExportPath != "" {
		t.Fatalf("ExportPath = %q, want empty", report.ExportPath)
	}
	if _, err := os.Stat(filepath.Join(cfg.ExportDir, session.ExportFileName)); !os.IsNotExist(err) {
		t.Fatalf("export file should not exist, stat err = %v", err)
	}
}

func TestProcessFile_MissingDocument(t *testing.T) {
	cfg := config.Default()
	if _, err := ProcessFile(context.Background(), cfg, nil, filepath.Join(t.TempDir(), "nope.pdf"), false); err == nil {
		t.Fatalf("expected error for missing document")
	}
}

func TestLoadConfig_OverridesWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("backend_url = \"http://file:9000/\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BackendURL != "http://file:9000" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}

	cfg, err = LoadConfig(Options{ConfigPath: path, Overrides: config.Overrides{BackendURL: "flag:7000"}})
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.BackendURL != "http://flag:7000" {
		t.Fatalf("BackendURL = %q", cfg.BackendURL)
	}
}

func TestNewClient_UsesConfiguredEndpoint(t *testing.T) {
	cfg := config.Default()
	cfg.Apply(config.Overrides{BackendURL: "http://claims.internal:9000/"})
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if got, want := client.Endpoint(), cfg.Endpoint(); got != want {
		t.Errorf("Endpoint() = %q, want %q", got, want)
	}
}

func TestNewClient_RejectsBadBackendURL(t *testing.T) {
	cfg := config.Default()
	cfg.BackendURL = "://nope"
	if _, err := NewClient(cfg); err == nil {
		t.Fatal("NewClient accepted a malformed backend URL")
	}
}
