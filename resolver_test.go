package main

import (
	"errors"
	"net"
	"testing"
)

func TestResolveOutboundIPv4(t *testing.T) {
	ip, err := resolveOutboundIPv4()
	if err != nil {
		var aerr *AddressResolutionError
		if !errors.As(err, &aerr) {
			t.Fatalf("got %v, want *AddressResolutionError", err)
		}
		t.Skipf("no outbound route on this host: %v", err)
	}
	if ip.To4() == nil {
		t.Errorf("got %v, want an IPv4 address", ip)
	}
	if ip.IsUnspecified() {
		t.Errorf("got %v, want a concrete address", ip)
	}
}

func TestDownloadURL(t *testing.T) {
	if got := downloadURL(net.IPv4(192, 168, 1, 10), 8080); got != "http://192.168.1.10:8080" {
		t.Errorf("got %q, want %q", got, "http://192.168.1.10:8080")
	}
}
