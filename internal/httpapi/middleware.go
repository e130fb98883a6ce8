package httpapi

import (
	"net"
	"net/http"
	"strings"
)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// trustedHosts rejects requests whose Host header matches none of the
// configured patterns.
func trustedHosts(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(allowedHosts) == 0 || hostAllowed(r.Host, allowedHosts) {
			next.ServeHTTP(w, r)
			return
		}
		rejectedHostsTotal.Inc()
		if zlog != nil {
			zlog.Warn().Str("host", r.Host).Str("path", r.URL.Path).Msg("rejected untrusted host")
		}
		writeJSONError(w, http.StatusBadRequest, "Invalid host header", "", "invalid_host")
	})
}

func hostAllowed(hostport string, patterns []string) bool {
	host := hostport
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		host = h
	}
	host = strings.ToLower(strings.Trim(host, "[]"))
	for _, p := range patterns {
		if suffix, ok := strings.CutPrefix(p, "*"); ok {
			// "*.example.com" matches sub.example.com but not example.com
			if strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
				return true
			}
			continue
		}
		if host == p {
			return true
		}
	}
	return false
}
