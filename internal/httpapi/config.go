package httpapi

import "strings"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled          bool
	corsAllowedOrigins   []string
	corsAllowedMethods   []string
	corsAllowedHeaders   []string
	corsAllowCredentials bool
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string, credentials bool) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
	corsAllowCredentials = credentials
}

// allowedHosts restricts the Host header. Empty, or any "*" entry, allows all.
var allowedHosts []string

// SetAllowedHosts configures the trusted Host header patterns. A pattern
// "*.example.com" matches any subdomain of example.com.
func SetAllowedHosts(hosts []string) {
	allowedHosts = allowedHosts[:0:0]
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "*" {
			allowedHosts = nil
			return
		}
		if h != "" {
			allowedHosts = append(allowedHosts, h)
		}
	}
}

// Application identity reported by GET /health.
var (
	appName    = "aigateway"
	appVersion = "1.0.0"
	appDebug   bool
)

// SetAppInfo sets the values reported by the application health endpoint.
func SetAppInfo(name, version string, debug bool) {
	if name != "" {
		appName = name
	}
	if version != "" {
		appVersion = version
	}
	appDebug = debug
}

// staticDir, when set, serves the browser UI.
var staticDir string

// SetStaticDir enables the static UI routes rooted at dir ("" disables).
func SetStaticDir(dir string) { staticDir = dir }
