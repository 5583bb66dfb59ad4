package middleware

import (
	"github.com/go-chi/cors"

	"github.com/heartmarshall/libris-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing for
// the configured origins, including preflight requests.
func CORS(cfg config.CORSConfig) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   cfg.Methods(),
		AllowedHeaders:   cfg.Headers(),
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
