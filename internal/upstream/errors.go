package upstream

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates fetcher failures so retry policy never has to
// match on response wording.
type ErrorKind string

const (
	// KindNetwork covers transport failures: the request never produced a response.
	KindNetwork ErrorKind = "network"
	// KindHTTP is any non-2xx response without a more specific kind.
	KindHTTP ErrorKind = "http_error"
	// KindAuth is a 401: the bearer token was rejected.
	KindAuth ErrorKind = "auth"
	// KindMembership is a 403 from a membership-gated project sub-resource.
	KindMembership ErrorKind = "membership_required"
)

// Error is the tagged error returned by every fetcher. Body carries the raw
// response text verbatim; there is no structured error payload upstream.
type Error struct {
	Kind   ErrorKind
	Op     string // e.g. "list tasks"
	Status int    // HTTP status, 0 for network failures
	Body   string // raw response body, or status line if unreadable
	Err    error  // underlying transport error, network failures only
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify assigns an ErrorKind from status and body. The backend signals a
// membership gate with a 403 whose detail is "Not a member of this project";
// the substring check happens here, once, so callers dispatch on Kind only.
func classify(status int, body string) ErrorKind {
	switch {
	case status == 401:
		return KindAuth
	case status == 403 && strings.Contains(strings.ToLower(body), "not a member"):
		return KindMembership
	default:
		return KindHTTP
	}
}

// IsMembershipRequired reports whether err is a membership-gated rejection.
func IsMembershipRequired(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == KindMembership
}

// IsAuthFailure reports whether err means the token was rejected (401).
func IsAuthFailure(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == KindAuth
}

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Kind == KindNetwork
}
