package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CorsMiddleware answers preflight requests and echoes the origin back when it
// is allowed. "*" allows any origin while still sending credentials.
func CorsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			opts.AllowedOrigins = nil
			opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
			break
		}
		if o != "" {
			opts.AllowedOrigins = append(opts.AllowedOrigins, o)
		}
	}
	return cors.Handler(opts)
}
