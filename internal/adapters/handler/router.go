package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the resize listener's routing table. Every GET path is an
// image lookup; the middleware stack covers request ids, CORS, the request
// timeout and panic recovery.
func NewRouter(h *Resize, timeout time.Duration, corsSuffixes []string) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: OriginSuffixCheck(corsSuffixes),
		AllowedMethods:  []string{http.MethodGet},
	}))
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Recoverer)

	r.Get("/*", h.Handle)

	return r
}
