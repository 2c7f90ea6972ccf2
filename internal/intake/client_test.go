package intake

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const sampleClaim = `{
  "extractedFields": {
    "policyNumber": null,
    "policyholderName": "Asha Rao",
    "effectiveDates": "01/01/2024 - 31/12/2024",
    "incidentDate": "12/03/2024",
    "incidentTime": "10:30 AM",
    "incidentLocation": "MG Road, Pune",
    "incidentDescription": "Rear-ended at a signal",
    "claimant": "Asha Rao",
    "thirdParties": null,
    "contactDetails": "asha@example.com",
    "assetType": "Car",
    "assetId": "MH12-AB-1234",
    "estimatedDamage": "18,000",
    "initialEstimate": "15,000",
    "claimType": "injury",
    "attachments": "photos.zip"
  },
  "missingFields": ["policyNumber"],
  "recommendedRoute": "Route to Specialist",
  "reasoning": "Injury claim requires specialist review"
}`

func TestProcessURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := processURL("")
	if err != nil {
		t.Fatalf("processURL returned error: %v", err)
	}
	if got := u.String(); got != DefaultBackendURL+ProcessPath {
		t.Fatalf("processURL(\"\") = %q, want %q", got, DefaultBackendURL+ProcessPath)
	}

	u, err = processURL("  claims.internal:9000/  ")
	if err != nil {
		t.Fatalf("processURL returned error: %v", err)
	}
	if got := u.String(); got != "http://claims.internal:9000/process" {
		t.Fatalf("processURL = %q, want http://claims.internal:9000/process", got)
	}

	u, err = processURL("https://example.com/api///")
	if err != nil {
		t.Fatalf("processURL returned error: %v", err)
	}
	if got := u.String(); got != "https://example.com/api/process" {
		t.Fatalf("processURL = %q, want https://example.com/api/process", got)
	}
}

func TestProcessURL_RejectsMissingHost(t *testing.T) {
	if _, err := processURL("http://"); err == nil {
		t.Fatalf("processURL(http://) returned nil error, want error")
	}
}

func TestClient_SubmitSendsSingleFilePart(t *testing.T) {
	t.Parallel()

	var (
		gotMethod    string
		gotPath      string
		gotFilename  string
		gotPartType  string
		gotContent   string
		gotFields    int
		gotUserAgent string
		gotRequestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFields = len(r.MultipartForm.File) + len(r.MultipartForm.Value)
		file, header, err := r.FormFile(FileField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		gotFilename = header.Filename
		gotPartType = header.Header.Get("Content-Type")
		gotContent = string(data)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, sampleClaim)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := c.Submit(context.Background(), NewUpload("claim1.txt", []byte("Claim Type: injury")))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != ProcessPath {
		t.Fatalf("request = %s %s, want POST %s", gotMethod, gotPath, ProcessPath)
	}
	if gotFields != 1 {
		t.Fatalf("form carried %d fields, want exactly 1", gotFields)
	}
	if gotFilename != "claim1.txt" || gotPartType != "text/plain" || gotContent != "Claim Type: injury" {
		t.Fatalf("file part = (%q, %q, %q), want claim1.txt text/plain content", gotFilename, gotPartType, gotContent)
	}
	if !strings.HasPrefix(gotUserAgent, "fnol/") {
		t.Fatalf("User-Agent = %q, want fnol/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
	if result.RecommendedRoute != "Route to Specialist" {
		t.Fatalf("RecommendedRoute = %q, want Route to Specialist", result.RecommendedRoute)
	}
	if result.ExtractedFields.ClaimType == nil || *result.ExtractedFields.ClaimType != "injury" {
		t.Fatalf("ClaimType = %v, want injury", result.ExtractedFields.ClaimType)
	}
	if result.ExtractedFields.PolicyNumber != nil {
		t.Fatalf("PolicyNumber = %v, want nil", *result.ExtractedFields.PolicyNumber)
	}
	if len(result.MissingFields) != 1 || result.MissingFields[0] != "policyNumber" {
		t.Fatalf("MissingFields = %v, want [policyNumber]", result.MissingFields)
	}
}

func TestClient_NonSuccessStatusCarriesCodeAndBody(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"detail":"Unsupported file type"}`, http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Submit(context.Background(), NewUpload("a.doc", []byte("x")))

	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("Submit error = %v, want *RemoteError", err)
	}
	if remote.Status != http.StatusInternalServerError {
		t.Fatalf("Status = %d, want 500", remote.Status)
	}
	msg := Message(err)
	if !strings.Contains(msg, "500") || !strings.Contains(msg, "Unsupported file type") {
		t.Fatalf("Message = %q, want status and body", msg)
	}
	if calls.Load() != 1 {
		t.Fatalf("server saw %d calls, want 1 (no retries)", calls.Load())
	}
}

func TestClient_MalformedSuccessBodyIsAnError(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"not json":          "{not-json",
		"array":             `[]`,
		"missing route":     `{"extractedFields":{},"missingFields":[],"reasoning":"x"}`,
		"null missing list": `{"extractedFields":{},"missingFields":null,"recommendedRoute":"x","reasoning":"x"}`,
		"numeric field":     `{"extractedFields":{"claimType":7},"missingFields":[],"recommendedRoute":"x","reasoning":"x"}`,
		"route not string":  `{"extractedFields":{},"missingFields":[],"recommendedRoute":1,"reasoning":"x"}`,
		"null missing name": `{"extractedFields":{},"missingFields":[null],"recommendedRoute":"x","reasoning":"x"}`,
		"missing name mix":  `{"extractedFields":{},"missingFields":["claimant",null],"recommendedRoute":"x","reasoning":"x"}`,
	}
	for name, body := range bodies {
		body := body
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, body)
			}))
			defer server.Close()

			c, err := NewClient(server.URL, time.Second)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			result, err := c.Submit(context.Background(), NewUpload("a.txt", []byte("x")))
			if result != nil {
				t.Fatalf("Submit result = %#v, want nil", result)
			}
			var decode *DecodeError
			if !errors.As(err, &decode) {
				t.Fatalf("Submit error = %v, want *DecodeError", err)
			}
			if !strings.HasPrefix(Message(err), "Invalid response") {
				t.Fatalf("Message = %q, want invalid response message", Message(err))
			}
		})
	}
}

func TestClient_NonSuccessBodyIsKeptVerbatim(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "  boom\n")
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Submit(context.Background(), NewUpload("a.txt", []byte("x")))
	if got := Message(err); got != "API Error (500):   boom\n" {
		t.Fatalf("Message = %q, want body embedded as sent", got)
	}
}

func TestClient_OversizedResponses(t *testing.T) {
	t.Parallel()

	huge := strings.Repeat("a", maxResponseBytes+10)
	cases := []struct {
		name   string
		status int
	}{
		{"success", http.StatusOK},
		{"failure", http.StatusBadGateway},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, huge)
			}))
			defer server.Close()

			c, err := NewClient(server.URL, 5*time.Second)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			_, err = c.Submit(context.Background(), NewUpload("a.txt", []byte("x")))

			if tc.status == http.StatusOK {
				var decode *DecodeError
				if !errors.As(err, &decode) || !strings.Contains(decode.Detail, "too large") {
					t.Fatalf("Submit error = %v, want response too large", err)
				}
				return
			}
			var remote *RemoteError
			if !errors.As(err, &remote) {
				t.Fatalf("Submit error = %v, want *RemoteError", err)
			}
			if !strings.HasSuffix(remote.Body, truncatedMarker) || len(remote.Body) != maxResponseBytes+len(truncatedMarker) {
				t.Fatalf("Body length = %d, want truncated with marker", len(remote.Body))
			}
		})
	}
}

func TestClient_UsesRequestIDFromContext(t *testing.T) {
	t.Parallel()

	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, sampleClaim)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := WithRequestID(context.Background(), "req-123")
	if _, err := c.Submit(ctx, NewUpload("a.txt", []byte("x"))); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got != "req-123" {
		t.Fatalf("X-Request-ID = %q, want req-123", got)
	}
}

func TestClient_TransportFailureIsGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.Submit(context.Background(), NewUpload("a.txt", []byte("x")))

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("Submit error = %v, want *TransportError", err)
	}
	msg := Message(err)
	if !strings.HasPrefix(msg, "Network error") || !strings.Contains(msg, addr) {
		t.Fatalf("Message = %q, want network error naming %s", msg, addr)
	}
}

func TestClient_SubmitRequiresUpload(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Submit(context.Background(), nil); err == nil {
		t.Fatalf("Submit(nil) returned nil error, want error")
	}
}

func TestClaimResult_PrettyRoundTrips(t *testing.T) {
	result, err := DecodeClaim([]byte(sampleClaim))
	if err != nil {
		t.Fatalf("DecodeClaim returned error: %v", err)
	}
	raw, err := result.Pretty()
	if err != nil {
		t.Fatalf("Pretty returned error: %v", err)
	}
	if !strings.Contains(raw, "\n  \"extractedFields\"") {
		t.Fatalf("Pretty output not indented: %q", raw)
	}
	var back ClaimResult
	if err := json.Unmarshal([]byte(raw), &back); err != nil {
		t.Fatalf("Unmarshal(Pretty) returned error: %v", err)
	}
	if *back.ExtractedFields.ClaimType != "injury" || back.ExtractedFields.ThirdParties != nil {
		t.Fatalf("round trip lost field values: %#v", back.ExtractedFields)
	}
}
