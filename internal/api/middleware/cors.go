package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// devOrigins are the dashboard dev servers allowed next to a local frontend URL
var devOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the dashboard origins to call the API with cookies. Only the
// methods the router serves are allowed; Content-Disposition is exposed so
// browsers can read export filenames.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// DefaultCORS allows frontendURL, plus the dev servers when it is local
func DefaultCORS(frontendURL string) func(http.Handler) http.Handler {
	origins := []string{strings.TrimRight(frontendURL, "/")}
	if strings.Contains(frontendURL, "localhost") || strings.Contains(frontendURL, "127.0.0.1") {
		for _, o := range devOrigins {
			if o != origins[0] {
				origins = append(origins, o)
			}
		}
	}
	return CORS(origins)
}
