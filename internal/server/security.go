package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// SecurityConfig controls the headers, CORS policy and input limits applied
// to every request.
type SecurityConfig struct {
	// EnableCORS adds Access-Control-* headers for allowed origins.
	EnableCORS bool
	// AllowedOrigins lists origins allowed by CORS; "*" allows all.
	AllowedOrigins []string
	// AllowedMethods is advertised in Access-Control-Allow-Methods.
	AllowedMethods []string
	// MaxPoints is the largest point budget /api/window accepts.
	MaxPoints int
}

// DefaultMaxPoints is the point budget cap when none is configured.
const DefaultMaxPoints = 2000

// DefaultSecurityConfig returns the configuration used by New: read-only CORS
// for any origin and a point budget cap of DefaultMaxPoints.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxPoints:      DefaultMaxPoints,
	}
}

// SecurityMiddleware sets security headers, answers CORS preflight requests
// and rejects a points query parameter above config.MaxPoints before next
// runs.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if config.MaxPoints > 0 {
			if raw := r.URL.Query().Get("points"); raw != "" {
				if n, err := strconv.Atoi(raw); err == nil && n > config.MaxPoints {
					writeError(w, http.StatusBadRequest,
						fmt.Sprintf("points must be at most %d", config.MaxPoints))
					return
				}
			}
		}

		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) (string, bool) {
	for _, a := range allowed {
		if a == "*" {
			return "*", true
		}
		if origin != "" && a == origin {
			return origin, true
		}
	}
	return "", false
}
