package middleware

import (
	"net"
	"net/http"
	"strings"
)

// WithSubnet only lets through requests whose X-Real-IP lies in the CIDR
// subnet. An empty or invalid subnet forbids everything.
func WithSubnet(subnet string) func(next http.Handler) http.Handler {
	_, trusted, err := net.ParseCIDR(strings.TrimSpace(subnet))
	if err != nil {
		trusted = nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP")))
			if trusted == nil || ip == nil || !trusted.Contains(ip) {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
