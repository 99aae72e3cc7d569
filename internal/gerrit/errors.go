package gerrit

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a Gerrit call failure. The kinds are machine-readable and
// surface unchanged in tool error payloads.
type Kind string

const (
	// KindAuthentication covers missing or rejected credentials (401/403).
	KindAuthentication Kind = "authentication"
	// KindNotFound covers missing changes, patchsets, and files (404).
	KindNotFound Kind = "not_found"
	// KindUpstream covers every other non-2xx response and undecodable bodies.
	KindUpstream Kind = "upstream"
	// KindTransport covers network-level failures: timeout, DNS, refused.
	KindTransport Kind = "transport"
)

// Error is the typed failure returned by every Client call. Status is the
// upstream HTTP status when one was received, 0 otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("gerrit: %s (HTTP %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("gerrit: %s: %s", e.Kind, e.Message)
}

// maxBodyInMessage caps how much of an upstream error body is carried into
// an error message.
const maxBodyInMessage = 256

// statusError maps a non-2xx upstream response onto the error taxonomy.
func statusError(status int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxBodyInMessage {
		msg = msg[:maxBodyInMessage] + "..."
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if msg == "" {
			msg = "authentication failed; check your Gerrit HTTP password"
		}
		return &Error{Kind: KindAuthentication, Status: status, Message: msg}
	case http.StatusNotFound:
		if msg == "" {
			msg = "not found"
		}
		return &Error{Kind: KindNotFound, Status: status, Message: msg}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindUpstream, Status: status, Message: msg}
	}
}

func transportError(format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func authError(format string, args ...any) *Error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

func upstreamError(format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...)}
}
