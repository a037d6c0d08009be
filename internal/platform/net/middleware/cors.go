package middleware

import (
	pstrings "chatstats/internal/platform/strings"

	chicors "github.com/go-chi/cors"
)

// CORSOptions is a narrow surface over go-chi/cors
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	corsOrigins = []string{"*"}
	corsMethods = []string{"GET", "POST", "OPTIONS"}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-ID"}
	corsExposed = []string{"X-Request-ID"}
)

// CORS wraps go-chi/cors. The browser front end only reads and uploads
func CORS(o CORSOptions) Func {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   pstrings.IfEmpty(o.AllowedOrigins, corsOrigins),
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders:   pstrings.IfEmpty(o.ExposedHeaders, corsExposed),
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
