package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS lets the mini-app web view call the API from its own origin.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", initDataHeader, shopperIDHeader, requestIDHeader, idempotencyHeader, "X-Requested-With"},
		ExposedHeaders:   []string{requestIDHeader, shopperIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
