package middleware

import (
	"net/http"
)

// apiHeaders apply to every hoots API response: nothing here is meant to be framed,
// sniffed or given device access.
var apiHeaders = map[string]string{
	"X-Frame-Options":        "DENY",
	"X-Content-Type-Options": "nosniff",
	"Referrer-Policy":        "strict-origin-when-cross-origin",
	"Permissions-Policy":     "camera=(), microphone=(), geolocation=()",
}

const hstsValue = "max-age=31536000; includeSubDomains"

// SecurityHeadersWithCSP sets apiHeaders plus the given CSP (skipped when empty).
// HSTS is only sent when the service sits behind HTTPS.
func SecurityHeadersWithCSP(isHTTPS bool, csp string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers := w.Header()
			for name, value := range apiHeaders {
				headers.Set(name, value)
			}
			if csp != "" {
				headers.Set("Content-Security-Policy", csp)
			}
			if isHTTPS {
				headers.Set("Strict-Transport-Security", hstsValue)
			}
			next.ServeHTTP(w, r)
		})
	}
}
