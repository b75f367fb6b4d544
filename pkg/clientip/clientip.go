package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the request's peer address without the port.
// Forwarding headers are ignored: the server is reached directly by the app,
// and a spoofable header must not pick the rate-limit bucket.
func RealClientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return strings.Trim(addr, "[]")
	}
	return host
}
