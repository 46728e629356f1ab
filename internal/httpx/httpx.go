// Package httpx provides the shared outbound HTTP client. Lookups go through
// a refreshed in-process DNS cache, since the opencode backend and the
// desktop executor hit the same few hosts over and over.
package httpx

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/dnscache"

	"mudabbir/internal/logging"
)

const refreshInterval = 5 * time.Minute

var (
	resolverOnce sync.Once
	resolver     *dnscache.Resolver
)

// Resolver returns the process-wide caching resolver.
func Resolver() *dnscache.Resolver {
	resolverOnce.Do(func() {
		resolver = &dnscache.Resolver{}
		go func() {
			t := time.NewTicker(refreshInterval)
			defer t.Stop()
			for range t.C {
				resolver.Refresh(true)
			}
		}()
		log := logging.For("httpx")
		log.Debug().Dur("refresh", refreshInterval).Msg("dns cache enabled")
	})
	return resolver
}

// DialContext resolves address through the cache and dials the first IP.
func DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}
	d := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	if ip := net.ParseIP(host); ip != nil {
		return d.DialContext(ctx, network, address)
	}
	ips, err := Resolver().LookupHost(ctx, host)
	if err != nil {
		return nil, err
	}
	if len(ips) == 0 {
		return nil, &net.DNSError{Err: "no IP addresses found", Name: host}
	}
	return d.DialContext(ctx, network, net.JoinHostPort(ips[0], port))
}

// NewClient returns a client using the cached dialer. A zero timeout means
// requests are bounded only by their context.
func NewClient(timeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = DialContext
	return &http.Client{Transport: tr, Timeout: timeout}
}
