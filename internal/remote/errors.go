package remote

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrTransport matches every fetch or push failure.
var ErrTransport = errors.New("remote request failed")

// TransportError reports a failed request: either the transport failed
// (StatusCode == 0) or the endpoint answered with a non-2xx status.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string // response body for non-2xx replies
	Err        error  // underlying transport error
}

func (e *TransportError) Error() string {
	b := strings.Builder{}
	b.WriteString(ErrTransport.Error())
	b.WriteString(": ")
	b.WriteString(e.Method)
	b.WriteString(" ")
	b.WriteString(e.URL)
	if e.StatusCode != 0 {
		b.WriteString(": status ")
		b.WriteString(strconv.Itoa(e.StatusCode))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	} else if m := strings.TrimSpace(e.Message); m != "" {
		b.WriteString(": ")
		b.WriteString(m)
	}
	return b.String()
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Reason returns a short, readable cause for user notifications.
func (e *TransportError) Reason() string {
	if e.Err != nil {
		return normalizeError(e.Err.Error())
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return strconv.Itoa(e.StatusCode) + " " + text
	}
	return "status " + strconv.Itoa(e.StatusCode)
}

// Reason returns a short cause for any error returned by the client.
func Reason(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Reason()
	}
	if err == nil {
		return ""
	}
	return normalizeError(err.Error())
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context canceled"):
		return "Canceled"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
