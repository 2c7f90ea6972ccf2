package stub

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claimsdesk/fnol/internal/intake"
)

func multipartRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	_, _ = part.Write(content)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, intake.ProcessPath, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestStub_ReplaysBuiltInClaim(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := app.Test(multipartRequest(t, "file", "claim1.pdf", []byte("%PDF")), -1)
	if err != nil {
		t.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	result, err := intake.DecodeClaim(body)
	if err != nil {
		t.Fatalf("DecodeClaim returned error: %v", err)
	}
	if result.RecommendedRoute != "Specialist Queue" {
		t.Fatalf("RecommendedRoute = %q", result.RecommendedRoute)
	}
}

func TestStub_MissingFileField(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := app.Test(multipartRequest(t, "document", "claim1.pdf", []byte("x")), -1)
	if err != nil {
		t.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
}

func TestStub_ForcedStatus(t *testing.T) {
	app, err := New(Options{Status: http.StatusServiceUnavailable, Body: "extractor offline"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := app.Test(multipartRequest(t, "file", "claim1.txt", []byte("x")), -1)
	if err != nil {
		t.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusServiceUnavailable || string(body) != "extractor offline" {
		t.Fatalf("response = %d %q", resp.StatusCode, body)
	}
}

func TestStub_RejectsInvalidFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(`{"recommendedRoute":"x"}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := New(Options{FixturePath: path})
	if err == nil || !strings.Contains(err.Error(), "fixture") {
		t.Fatalf("New error = %v, want fixture error", err)
	}
	if _, err := New(Options{Status: 42}); err == nil {
		t.Fatalf("New(Status: 42) returned nil error")
	}
}

func TestStub_Health(t *testing.T) {
	app, err := New(Options{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	if err != nil {
		t.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
