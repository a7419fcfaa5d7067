package main

import (
	"errors"
	"fmt"
)

// ErrServerClosed is returned by Serve and AcceptOne after Close.
var ErrServerClosed = errors.New("server closed")

// ConfigError reports a bad command line. It is raised before any network
// activity.
type ConfigError struct {
	Msg string
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FileAccessError is returned when the served file cannot be opened or
// stat'ed.
type FileAccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to %s the file '%s' (%v)", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// AddressResolutionError is returned when the outbound IPv4 address cannot be
// determined.
type AddressResolutionError struct {
	Op  string
	Err error
}

func (e *AddressResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve the local address: %s (%v)", e.Op, e.Err)
}

func (e *AddressResolutionError) Unwrap() error { return e.Err }

// BindError is returned when the listening socket cannot be set up.
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to bind port %d (%v)", e.Port, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// AcceptError is returned when waiting for a client fails.
type AcceptError struct {
	Err error
}

func (e *AcceptError) Error() string {
	return fmt.Sprintf("accept() failed (%v)", e.Err)
}

func (e *AcceptError) Unwrap() error { return e.Err }

// ProtocolError reports a malformed or unsupported request.
type ProtocolError struct {
	Msg string
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bad request: %s (%v)", e.Msg, e.Err)
	}
	return "bad request: " + e.Msg
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TransportError reports a failed read or write on a client connection, or
// on the file while its content is being streamed.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s (%v)", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// isFatal reports whether err must stop the server instead of aborting only
// the current session.
func isFatal(err error) bool {
	var (
		addrErr   *AddressResolutionError
		bindErr   *BindError
		acceptErr *AcceptError
	)
	return errors.As(err, &addrErr) ||
		errors.As(err, &bindErr) ||
		errors.As(err, &acceptErr) ||
		errors.Is(err, ErrServerClosed)
}
