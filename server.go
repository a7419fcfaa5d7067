package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"

	"github.com/mdp/qrterminal/v3"
)

// Half-block characters for the terminal QR code.
const (
	qrBlackWhite = "▄"
	qrBlackBlack = " "
	qrWhiteBlack = "▀"
	qrWhiteWhite = "█"
)

// Server runs serving sessions one after the other on a single endpoint.
type Server struct {
	path        string
	keepServing bool
	showQR      bool

	endpoint *Endpoint
	metrics  *Metrics
	history  HistoryRepository
	resolve  func() (net.IP, error)

	out    io.Writer
	errOut io.Writer

	mu     sync.Mutex
	active net.Conn
	closed bool
}

// NewServer prepares a server for cfg on ep. history may be nil.
func NewServer(cfg *Config, ep *Endpoint, metrics *Metrics, history HistoryRepository) *Server {
	return &Server{
		path:        cfg.Path,
		keepServing: cfg.KeepServing,
		showQR:      cfg.ShowQR,
		endpoint:    ep,
		metrics:     metrics,
		history:     history,
		resolve:     resolveOutboundIPv4,
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
}

// Serve runs one session, or sessions until a fatal error when keep serving
// is enabled. It returns the error that ended the last session.
func (s *Server) Serve() error {
	for {
		err := s.serveSession()
		if s.isClosed() {
			return ErrServerClosed
		}
		if isFatal(err) || !s.keepServing {
			return err
		}
	}
}

// Close stops Serve. A transfer in progress is cut off.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.active != nil {
		s.active.Close()
	}
	return s.endpoint.Close()
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) serveSession() error {
	ip, err := s.resolve()
	if err != nil {
		return err
	}
	url := downloadURL(ip, s.endpoint.Port)
	fmt.Fprintf(s.out, "Downloading URL : %s\n", url)
	if s.showQR {
		s.printQR(url)
	}

	fmt.Fprintln(s.out, "Waiting for a client...")
	conn, err := s.accept()
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Client connected.")

	sess := newSession(s.path)
	sess.client = conn.RemoteAddr().String()
	s.metrics.IncrementSessions()

	err = s.exchange(sess, conn)
	s.finish(sess, err)
	return err
}

// exchange drives both phases. Each connection is closed as soon as its
// phase is over.
func (s *Server) exchange(sess *session, conn *net.TCPConn) error {
	err := sess.redirect(conn)
	s.release(conn)
	if err != nil {
		return err
	}

	conn, err = s.accept()
	if err != nil {
		return err
	}
	defer s.release(conn)
	sess.client = conn.RemoteAddr().String()
	return sess.sendFile(conn, s.out)
}

func (s *Server) finish(sess *session, err error) {
	s.metrics.AddBytesSent(sess.sent)
	if err == nil {
		s.metrics.IncrementCompleted()
		fmt.Fprintln(s.out, "\nFile successfully sent.")
	} else {
		s.metrics.IncrementAborted()
		if sess.progress != nil {
			fmt.Fprintln(s.out)
		}
		fmt.Fprintf(s.errOut, "  !! session=%s: Error : %v\n", sess.id, err)
	}

	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if herr := s.history.RecordTransfer(ctx, sess.record(err)); herr != nil {
		fmt.Fprintf(s.errOut, "  !! session=%s: %v\n", sess.id, herr)
	}
}

func (s *Server) accept() (*net.TCPConn, error) {
	conn, err := s.endpoint.AcceptOne()
	if err != nil {
		if s.isClosed() {
			return nil, ErrServerClosed
		}
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		conn.Close()
		return nil, ErrServerClosed
	}
	s.active = conn
	return conn, nil
}

func (s *Server) release(conn net.Conn) {
	s.mu.Lock()
	if s.active == conn {
		s.active = nil
	}
	s.mu.Unlock()
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		fmt.Fprintf(s.errOut, "  !! close: %v\n", err)
	}
}

func (s *Server) printQR(url string) {
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:          qrterminal.M,
		Writer:         s.out,
		HalfBlocks:     true,
		BlackChar:      qrBlackBlack,
		WhiteBlackChar: qrWhiteBlack,
		WhiteChar:      qrWhiteWhite,
		BlackWhiteChar: qrBlackWhite,
		QuietZone:      1,
	})
}
