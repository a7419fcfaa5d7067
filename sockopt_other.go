//go:build !unix

package main

import (
	"net"
	"syscall"
)

// SO_REUSEADDR on Windows allows port stealing; keep the default there.
func controlReuseAddr(network, address string, c syscall.RawConn) error {
	return nil
}

func setBacklog(ln *net.TCPListener, backlog int) error {
	return nil
}
