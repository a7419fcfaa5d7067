package main

import (
	"fmt"
	"net"
)

// probeAddr belongs to TEST-NET-1 (RFC 5737). Connecting a UDP socket sends
// nothing; it only makes the kernel pick the outbound interface.
const probeAddr = "192.0.2.0:80"

// resolveOutboundIPv4 returns the local IPv4 address used to reach the
// outside world, for display in the download URL.
func resolveOutboundIPv4() (net.IP, error) {
	raddr, err := net.ResolveUDPAddr("udp4", probeAddr)
	if err != nil {
		return nil, &AddressResolutionError{Op: "resolve probe address", Err: err}
	}
	conn, err := net.DialUDP("udp4", nil, raddr)
	if err != nil {
		return nil, &AddressResolutionError{Op: "connect()", Err: err}
	}
	defer conn.Close()

	laddr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || laddr == nil {
		return nil, &AddressResolutionError{Op: "getsockname()", Err: fmt.Errorf("unexpected local address %v", conn.LocalAddr())}
	}
	ip := laddr.IP.To4()
	if ip == nil || ip.IsUnspecified() {
		return nil, &AddressResolutionError{Op: "getsockname()", Err: fmt.Errorf("no IPv4 address in %v", laddr)}
	}
	return ip, nil
}

// downloadURL is the address printed for the operator.
func downloadURL(ip net.IP, port int) string {
	return fmt.Sprintf("http://%s:%d", ip, port)
}
