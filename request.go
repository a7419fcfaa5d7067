package main

import (
	"bytes"
	"errors"
	"io"
)

const (
	// Large enough for any browser request header block.
	maxRequestSize = 1024 * 1024
	maxURILength   = 8 * 1024
)

var headerEnd = []byte("\r\n\r\n")

// RequestLine is the first line of an HTTP request. Headers are never
// examined.
type RequestLine struct {
	Method string
	URI    string
}

// readRequest reads one request into buf and parses its request line. A
// request that fills buf entirely is rejected as too long.
func readRequest(r io.Reader, buf []byte) (*RequestLine, error) {
	n := 0
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		start := max(n-len(headerEnd)+1, 0)
		n += m
		if bytes.Contains(buf[start:n], headerEnd) {
			break
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				if n == 0 {
					return nil, &ProtocolError{Msg: "connection closed before any request was sent"}
				}
				break
			}
			return nil, &TransportError{Op: "failed to read the browser request", Err: err}
		}
	}
	if n == len(buf) {
		return nil, &ProtocolError{Msg: "request too long"}
	}
	return parseRequestLine(buf[:n])
}

// parseRequestLine extracts the method and URI of "GET <uri> HTTP/x.y".
func parseRequestLine(data []byte) (*RequestLine, error) {
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		data = data[:i]
	}
	if len(data) == 0 {
		return nil, &ProtocolError{Msg: "empty request line"}
	}
	method, rest, ok := bytes.Cut(data, []byte(" "))
	if string(method) != "GET" {
		return nil, &ProtocolError{Msg: "unsupported method '" + truncate(method, 16) + "'"}
	}
	if !ok {
		return nil, &ProtocolError{Msg: "missing request URI"}
	}
	end := bytes.IndexByte(rest, ' ')
	if end < 0 {
		return nil, &ProtocolError{Msg: "request URI is not terminated"}
	}
	if end > maxURILength {
		return nil, &ProtocolError{Msg: "request URI too long"}
	}
	return &RequestLine{Method: "GET", URI: string(rest[:end])}, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
