package domain

import (
	"errors"
	"net/http"
)

// Cache lifetimes differ per outcome so edge caches retry missing sources
// sooner than sources that are known not to decode at all.
const (
	CacheControlSuccess      = "public, s-maxage=2592000" // 30 days
	CacheControlNotFound     = "public, s-maxage=28800"   // 8 hours
	CacheControlDecodeFailed = "public, s-maxage=604800"  // 7 days
	CacheControlResizeFailed = "public, s-maxage=28800"   // 8 hours
)

// ResponsePolicy is the HTTP shape of an outcome. Body is the fixed text for
// failure outcomes; a success sends the encoded image instead.
type ResponsePolicy struct {
	Status       int
	CacheControl string
	ContentType  string
	Body         string
}

// OutcomeFromError maps an error returned by the pipeline to its outcome.
// A nil error maps to OutcomeSuccess.
func OutcomeFromError(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrSourceNotFound):
		return OutcomeSourceNotFound
	case errors.Is(err, ErrDecodeFailed):
		return OutcomeDecodeFailed
	default:
		return OutcomeResizeFailed
	}
}

func PolicyFor(outcome Outcome) ResponsePolicy {
	switch outcome {
	case OutcomeSuccess:
		return ResponsePolicy{
			Status:       http.StatusOK,
			CacheControl: CacheControlSuccess,
			ContentType:  "image/jpeg",
		}
	case OutcomeSourceNotFound:
		return ResponsePolicy{
			Status:       http.StatusNotFound,
			CacheControl: CacheControlNotFound,
		}
	case OutcomeDecodeFailed:
		return ResponsePolicy{
			Status:       http.StatusInternalServerError,
			CacheControl: CacheControlDecodeFailed,
			ContentType:  "text/plain; charset=utf-8",
			Body:         "Decode image error",
		}
	default:
		return ResponsePolicy{
			Status:       http.StatusInternalServerError,
			CacheControl: CacheControlResizeFailed,
			ContentType:  "text/plain; charset=utf-8",
			Body:         "Resize image error",
		}
	}
}
