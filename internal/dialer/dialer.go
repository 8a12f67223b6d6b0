package dialer

import (
	"context"
	"fmt"
	"net"
	"time"

	"golang.org/x/net/proxy"
)

// Dialer opens the outbound TCP connection used to reach the page host.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

const (
	ModeDirect = "direct"
	ModeSOCKS5 = "socks5"
)

// New selects the dialer for mode.
func New(mode, socksAddr string, connectTimeout time.Duration) (Dialer, error) {
	switch mode {
	case ModeDirect, "":
		return NewDirect(connectTimeout), nil
	case ModeSOCKS5:
		return NewSOCKS5(socksAddr, connectTimeout)
	default:
		return nil, fmt.Errorf("unknown egress mode %q (use direct|socks5)", mode)
	}
}

type directDialer struct {
	timeout time.Duration
}

func NewDirect(connectTimeout time.Duration) Dialer {
	return &directDialer{timeout: connectTimeout}
}

func (d *directDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	nd := net.Dialer{Timeout: d.timeout}
	return nd.DialContext(ctx, network, address)
}

type socks5Dialer struct {
	proxyAddr string
	forward   proxy.ContextDialer
}

// NewSOCKS5 returns a dialer that CONNECTs through the SOCKS5 proxy at
// proxyAddr (no auth). The connect timeout applies to reaching the proxy.
func NewSOCKS5(proxyAddr string, connectTimeout time.Duration) (Dialer, error) {
	if proxyAddr == "" {
		return nil, fmt.Errorf("socks5 proxy address is empty")
	}
	pd, err := proxy.SOCKS5("tcp", proxyAddr, nil, &net.Dialer{Timeout: connectTimeout})
	if err != nil {
		return nil, fmt.Errorf("socks5 dialer %s: %w", proxyAddr, err)
	}
	cd, ok := pd.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("socks5 dialer %s: context dialing unsupported", proxyAddr)
	}
	return &socks5Dialer{proxyAddr: proxyAddr, forward: cd}, nil
}

func (s *socks5Dialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if network != "tcp" && network != "tcp4" && network != "tcp6" {
		return nil, fmt.Errorf("socks5 dialer supports tcp only, got %q", network)
	}
	c, err := s.forward.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("dial %s via socks5 %s: %w", address, s.proxyAddr, err)
	}
	return c, nil
}
