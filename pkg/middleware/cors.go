package middleware

import (
	"net/http"
	"slices"
)

// Cors responde requisições de preflight e devolve a origem quando permitida.
// Uma entrada "*" permite qualquer origem.
func Cors(allowedOrigins []string) func(http.Handler) http.Handler {
	isOriginAllowed := func(origin string) bool {
		return origin != "" && (slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if isOriginAllowed(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Requested-With")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.Header().Add("Vary", "Origin")
			}

			// Preflight não chega aos handlers
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
