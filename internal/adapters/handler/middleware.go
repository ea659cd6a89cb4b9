package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// RequestID tags each response with a fresh id, stores a logger carrying it
// in the request context and writes one access log line per request at debug
// level.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var requestID string
		if id, err := uuid.NewV4(); err == nil {
			requestID = id.String()
			w.Header().Set("X-Request-Id", requestID)
		}

		logger := log.With().Str("requestId", requestID).Logger()
		r = r.WithContext(logger.WithContext(r.Context()))

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}

// OriginSuffixCheck allows any origin whose raw value ends in one of the
// given suffixes, so ".remtori.com" admits every subdomain but not the bare
// apex.
func OriginSuffixCheck(suffixes []string) func(r *http.Request, origin string) bool {
	return func(_ *http.Request, origin string) bool {
		for _, suffix := range suffixes {
			if strings.HasSuffix(origin, suffix) {
				return true
			}
		}
		return false
	}
}
