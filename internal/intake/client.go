package intake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Submitter sends one document to the claims service.
// This interface is implemented by *Client and can be used for testing.
type Submitter interface {
	Submit(ctx context.Context, upload *Upload) (*ClaimResult, error)
}

// Ensure Client implements Submitter at compile time.
var _ Submitter = (*Client)(nil)

// Client talks to the claims extraction HTTP API.
type Client struct {
	endpoint  *url.URL
	http      *http.Client
	userAgent string
	newID     func() string
}

const (
	// DefaultBackendURL is used when no backend URL is configured.
	DefaultBackendURL = "http://127.0.0.1:8000"
	// ProcessPath is appended to the backend URL for submissions.
	ProcessPath = "/process"
	// FileField is the multipart field carrying the document.
	FileField = "file"

	defaultUserAgent = "fnol/0.1"
	maxResponseBytes = 8 << 20
	truncatedMarker  = " [truncated]"
)

// NewClient builds a Client for the given backend base URL. A zero timeout
// leaves the request bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	endpoint, err := processURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		endpoint:  endpoint,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		newID:     uuid.NewString,
	}, nil
}

// Endpoint returns the fully resolved /process URL.
func (c *Client) Endpoint() string {
	if c == nil || c.endpoint == nil {
		return ""
	}
	return c.endpoint.String()
}

// Submit posts the upload as a single-part multipart form and returns the
// decoded claim. It issues exactly one request and never retries.
func (c *Client) Submit(ctx context.Context, upload *Upload) (*ClaimResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, contentType, err := encodeUpload(upload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", c.requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.endpoint.String(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, &TransportError{URL: c.endpoint.String(), Err: fmt.Errorf("read response: %w", err)}
	}
	tooLarge := len(payload) > maxResponseBytes
	if tooLarge {
		payload = payload[:maxResponseBytes]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text := string(payload)
		if tooLarge {
			text += truncatedMarker
		}
		return nil, &RemoteError{Status: resp.StatusCode, Body: text}
	}
	if tooLarge {
		return nil, &DecodeError{Detail: fmt.Sprintf("response too large (over %d bytes)", maxResponseBytes)}
	}
	return DecodeClaim(payload)
}

type requestIDKey struct{}

// WithRequestID makes Submit send id as X-Request-ID instead of minting one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (c *Client) requestID(ctx context.Context) string {
	if id := RequestIDFrom(ctx); id != "" {
		return id
	}
	return c.newID()
}

func encodeUpload(upload *Upload) (io.Reader, string, error) {
	if upload == nil {
		return nil, "", fmt.Errorf("upload is nil")
	}
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     FileField,
		"filename": upload.Name,
	}))
	mediaType := upload.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(upload.Content); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and supplies a
// scheme when the value is a bare host:port.
func NormalizeBaseURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBackendURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

func processURL(baseURL string) (*url.URL, error) {
	normalized := NormalizeBaseURL(baseURL)
	u, err := url.Parse(normalized + ProcessPath)
	if err != nil {
		return nil, fmt.Errorf("parse backend url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse backend url %q: missing host", baseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
