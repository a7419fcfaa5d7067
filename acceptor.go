package main

import (
	"context"
	"errors"
	"fmt"
	"net"

	"golang.org/x/net/ipv4"
)

const (
	// One client at a time: no pending connection needs to be queued.
	listenBacklog = 1

	sockBuf       = 256 * 1024
	tosThroughput = 0x08 // IPTOS_THROUGHPUT
)

// Endpoint is the listening socket the file is served from.
type Endpoint struct {
	ln   *net.TCPListener
	Port int
}

// createServer binds an IPv4 TCP socket on all interfaces. Port 0 picks an
// ephemeral port, reported in Endpoint.Port.
func createServer(port int) (*Endpoint, error) {
	if port < 0 || port > 65535 {
		return nil, &BindError{Port: port, Err: fmt.Errorf("port value must be within 0 and 65535")}
	}
	lc := net.ListenConfig{Control: controlReuseAddr}
	l, err := lc.Listen(context.Background(), "tcp4", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, &BindError{Port: port, Err: err}
	}
	ln := l.(*net.TCPListener)
	if err := setBacklog(ln, listenBacklog); err != nil {
		ln.Close()
		return nil, &BindError{Port: port, Err: fmt.Errorf("listen(): %w", err)}
	}
	return &Endpoint{ln: ln, Port: ln.Addr().(*net.TCPAddr).Port}, nil
}

// AcceptOne blocks until exactly one client connects.
func (e *Endpoint) AcceptOne() (*net.TCPConn, error) {
	conn, err := e.ln.AcceptTCP()
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, ErrServerClosed
		}
		return nil, &AcceptError{Err: err}
	}
	tuneConn(conn)
	return conn, nil
}

func (e *Endpoint) Close() error {
	return e.ln.Close()
}

// tuneConn marks the connection for bulk transfer. Failures only cost
// throughput, so they are ignored.
func tuneConn(conn *net.TCPConn) {
	conn.SetWriteBuffer(sockBuf)
	ipv4.NewConn(conn).SetTOS(tosThroughput)
}
