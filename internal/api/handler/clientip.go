package handler

import (
	"net"
	"net/http"
	"strings"
)

const maxIPLen = 45 // longest textual IPv6 form

// clientIP resolves the peer address to store with a hit. Behind a proxy the
// first entry of X-Forwarded-For wins; otherwise the direct peer is used.
func clientIP(r *http.Request, behindProxy bool) string {
	if behindProxy {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			return truncate(strings.TrimSpace(first), maxIPLen)
		}
		return "0.0.0.0"
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return truncate(r.RemoteAddr, maxIPLen)
	}
	return truncate(host, maxIPLen)
}
