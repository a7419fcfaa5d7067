package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ─────────────────────────────────────────────────────────────────────────────
// WIRE FORMAT
// ─────────────────────────────────────────────────────────────────────────────

const (
	serverName = "HTTP File Sharing"
	chunkSize  = 4096

	// Browsers check Content-Length against this body, keep it byte exact.
	redirectBody = "<html>\n" +
		"  <head>HTTP File Sharing by Adrien RICCIARDI</head>\n" +
		"  <body>\n" +
		"    <p>Downloading file...</p>\n" +
		"  </body>\n" +
		"</html>"
)

// displayName is the part of path after the last separator.
func displayName(path string) string {
	if i := strings.LastIndexAny(path, "/"+string(os.PathSeparator)); i >= 0 {
		return path[i+1:]
	}
	return path
}

func redirectResponse(name string) []byte {
	return []byte("HTTP/1.0 302 Found\r\n" +
		"Server: " + serverName + "\r\n" +
		"Location: /" + url.PathEscape(name) + "\r\n" +
		"Content-Type: text/html\r\n" +
		"Content-Length: " + strconv.Itoa(len(redirectBody)) + "\r\n\r\n" +
		redirectBody)
}

func fileHeader(size int64) []byte {
	return []byte("HTTP/1.0 200 OK\r\n" +
		"Server: " + serverName + "\r\n" +
		"Content-Type: application/octet-stream\r\n" +
		"Content-Length: " + strconv.FormatInt(size, 10) + "\r\n\r\n")
}

func writeAll(w io.Writer, b []byte, op string) error {
	n, err := w.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// SESSION
// ─────────────────────────────────────────────────────────────────────────────

// session serves the file to one client: a redirect on the first connection,
// the file content on the second.
type session struct {
	id      string
	path    string
	name    string
	client  string
	started time.Time

	size     int64
	sent     int64
	progress *Progress

	reqBuf []byte
	chunk  []byte
}

func newSession(path string) *session {
	return &session{
		id:      uuid.New().String(),
		path:    path,
		name:    displayName(path),
		started: time.Now(),
		reqBuf:  make([]byte, maxRequestSize),
		chunk:   make([]byte, chunkSize),
	}
}

// redirect answers "GET /" with a redirection to "/<file name>".
func (sess *session) redirect(rw io.ReadWriter) error {
	if _, err := readRequest(rw, sess.reqBuf); err != nil {
		return err
	}
	return writeAll(rw, redirectResponse(sess.name), "failed to send the HTTP GET / answer to the browser")
}

// sendFile answers any GET with the file content. progressOut receives the
// percentage line.
func (sess *session) sendFile(rw io.ReadWriter, progressOut io.Writer) error {
	if _, err := readRequest(rw, sess.reqBuf); err != nil {
		return err
	}

	f, err := os.Open(sess.path)
	if err != nil {
		return &FileAccessError{Op: "open", Path: sess.path, Err: err}
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return &FileAccessError{Op: "stat", Path: sess.path, Err: err}
	}
	sess.size = fi.Size()

	if err := writeAll(rw, fileHeader(sess.size), "failed to send the HTTP GET /File_Name answer to the browser"); err != nil {
		return err
	}
	sess.progress = newProgress(progressOut, sess.size)
	return sess.stream(rw, f)
}

// stream copies exactly sess.size bytes from r to w in chunkSize pieces.
func (sess *session) stream(w io.Writer, r io.Reader) error {
	if sess.size == 0 {
		sess.progress.Update(0)
		return nil
	}
	src := io.LimitReader(r, sess.size-sess.sent)
	for {
		n, err := src.Read(sess.chunk)
		if n > 0 {
			if werr := writeAll(w, sess.chunk[:n], "failed to send the file content to the browser"); werr != nil {
				return werr
			}
			sess.sent += int64(n)
			sess.progress.Update(sess.sent)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return &TransportError{Op: "failed to read the file content", Err: err}
		}
		if n == 0 || err != nil {
			break
		}
	}
	if sess.sent != sess.size {
		return &TransportError{Op: "file content ended early", Err: fmt.Errorf("sent %d of %d bytes", sess.sent, sess.size)}
	}
	return nil
}

// record builds the history entry for a finished session.
func (sess *session) record(err error) *TransferRecord {
	rec := &TransferRecord{
		ID:         sess.id,
		FileName:   sess.name,
		ClientAddr: sess.client,
		FileSize:   sess.size,
		BytesSent:  sess.sent,
		Status:     StatusDone,
		StartedAt:  sess.started,
		FinishedAt: time.Now(),
	}
	if err != nil {
		rec.Status = StatusAborted
		rec.FailureReason = err.Error()
	}
	return rec
}
