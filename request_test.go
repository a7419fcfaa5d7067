package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantURI string
		wantErr bool
	}{
		{"root", "GET / HTTP/1.1\r\nHost: x\r\n\r\n", "/", false},
		{"file", "GET /report.pdf HTTP/1.0\r\n\r\n", "/report.pdf", false},
		{"any uri", "GET /something/else?x=1 HTTP/1.1\r\n\r\n", "/something/else?x=1", false},
		{"post", "POST / HTTP/1.1\r\n\r\n", "", true},
		{"lowercase", "get / HTTP/1.1\r\n\r\n", "", true},
		{"method only", "GET\r\n\r\n", "", true},
		{"no terminating space", "GET /\r\nHost: a b\r\n\r\n", "", true},
		{"empty", "\r\n\r\n", "", true},
		{"uri too long", "GET /" + strings.Repeat("a", maxURILength) + " HTTP/1.1\r\n\r\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseRequestLine([]byte(tt.input))
			if tt.wantErr {
				var perr *ProtocolError
				if !errors.As(err, &perr) {
					t.Fatalf("got %v, want *ProtocolError", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if req.Method != "GET" {
				t.Errorf("got method %q, want GET", req.Method)
			}
			if req.URI != tt.wantURI {
				t.Errorf("got uri %q, want %q", req.URI, tt.wantURI)
			}
		})
	}
}

func TestReadRequestOneByteAtATime(t *testing.T) {
	r := iotest.OneByteReader(strings.NewReader("GET /a.txt HTTP/1.1\r\nUser-Agent: test\r\n\r\n"))
	req, err := readRequest(r, make([]byte, 1024))
	if err != nil {
		t.Fatal(err)
	}
	if req.URI != "/a.txt" {
		t.Errorf("got %q, want %q", req.URI, "/a.txt")
	}
}

func TestReadRequestClosedImmediately(t *testing.T) {
	_, err := readRequest(strings.NewReader(""), make([]byte, 1024))
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *ProtocolError", err)
	}
}

func TestReadRequestWithoutHeaderEnd(t *testing.T) {
	// The client half-closes after the request line.
	req, err := readRequest(strings.NewReader("GET / HTTP/1.0\r\n"), make([]byte, 1024))
	if err != nil {
		t.Fatal(err)
	}
	if req.URI != "/" {
		t.Errorf("got %q, want /", req.URI)
	}
}

func TestReadRequestTooLong(t *testing.T) {
	buf := make([]byte, 64)
	input := "GET / HTTP/1.1\r\nCookie: " + strings.Repeat("x", 100) + "\r\n\r\n"
	_, err := readRequest(strings.NewReader(input), buf)
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *ProtocolError", err)
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("got %q, want a 'too long' error", err)
	}
}

func TestReadRequestReadError(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(bytes.NewReader([]byte("GET / HT")), iotest.ErrReader(boom))
	_, err := readRequest(r, make([]byte, 1024))
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("got %v, want *TransportError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want it to wrap %v", err, boom)
	}
}
