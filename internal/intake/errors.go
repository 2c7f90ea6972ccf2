package intake

import (
	"errors"
	"fmt"
	"strings"
)

// RemoteError reports a non-2xx answer from the claims service.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("API Error (%d): %s", e.Status, e.Body)
}

// TransportError reports that no response could be obtained at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a 2xx response whose body is not a claim payload.
type DecodeError struct {
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode claim: %s: %v", e.Detail, e.Err)
	}
	return "decode claim: " + e.Detail
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Message turns a Submit error into the single line shown to the operator.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Error()
	}
	var transport *TransportError
	if errors.As(err, &transport) {
		return fmt.Sprintf("Network error: could not reach the claims service at %s. Check that it is running and reachable.", transport.URL)
	}
	var decode *DecodeError
	if errors.As(err, &decode) {
		return "Invalid response from claims service: " + decode.Detail
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "Failed to process claim."
	}
	return msg
}
