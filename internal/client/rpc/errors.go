package rpc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Transport kinds, matched with errors.Is on a *TransportError.
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrServerException = errors.New("server exception")
	ErrBadResponse     = errors.New("malformed server response")

	// ErrApplication is matched by every *ApplicationError.
	ErrApplication = errors.New("procedure reported failure")

	ErrInvalidArgument = errors.New("argument must be a scalar")
)

// TransportError is a failure below the payload: the request did not reach
// the server, the server answered with a non-2xx status, or the framework
// raised an exception. The payload of such a call must not be trusted.
type TransportError struct {
	Procedure      string
	StatusCode     int
	ExcType        string
	ServerMessages []string
	Kind           error
	Err            error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", e.Procedure, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.ExcType != "" {
		fmt.Fprintf(&b, " %s", e.ExcType)
	}
	if len(e.ServerMessages) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.ServerMessages, "; "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ApplicationError is a well-formed response whose success discriminator
// reports failure, or one that carries no payload at all. Reason is the
// server-supplied text and may be empty.
type ApplicationError struct {
	Procedure string
	Reason    string
}

func (e *ApplicationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.Procedure, ErrApplication)
	}
	return fmt.Sprintf("%s: %v: %s", e.Procedure, ErrApplication, e.Reason)
}

func (e *ApplicationError) Unwrap() error { return ErrApplication }

// Reason returns the server-supplied failure text carried by err, or "".
func Reason(err error) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	return ""
}

// IsTransport reports whether err is a transport/framework failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
