package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/remtori/image-resize/internal/core/domain"
	"github.com/remtori/image-resize/internal/core/port"
	"github.com/rs/zerolog"
)

// Resize serves every image path on the listener. It parses the requested
// dimensions, runs the processing pipeline and translates the outcome into
// status, cache-control header and body.
type Resize struct {
	processor port.ImageProcessor
	metrics   port.MetricsRecorder
}

func NewResize(processor port.ImageProcessor, metrics port.MetricsRecorder) *Resize {
	return &Resize{processor: processor, metrics: metrics}
}

func (h *Resize) Handle(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	width, err := queryDimension(r.URL.Query(), "width", "w")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	height, err := queryDimension(r.URL.Query(), "height", "h")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := domain.ResizeRequest{
		Path:   strings.TrimPrefix(r.URL.Path, "/"),
		Width:  width,
		Height: height,
	}

	if req.Path == "" {
		logger.Debug().Msg("request without a path")
		h.metrics.RecordRequest(domain.Result{}, domain.OutcomeSourceNotFound)
		writeResponse(w, domain.PolicyFor(domain.OutcomeSourceNotFound), nil)
		return
	}

	result, err := h.processor.Process(r.Context(), req)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		// The timeout middleware owns the response from here.
		logger.Debug().Err(err).Str("path", req.Path).Msg("request aborted")
		return
	}

	outcome := domain.OutcomeFromError(err)
	h.metrics.RecordRequest(result, outcome)

	if err != nil {
		logger.Warn().Err(err).
			Str("path", req.Path).
			Str("outcome", string(outcome)).
			Str("fileType", sniffedType(result.FileType)).
			Msg("image processing failed")
	} else {
		logger.Info().
			Str("path", result.Path).
			Str("source", string(result.Source)).
			Str("fileType", sniffedType(result.FileType)).
			Str("original", result.Original.String()).
			Str("resized", result.Target.String()).
			Dur("fetch", result.Timings.Fetch).
			Dur("decode", result.Timings.Decode).
			Dur("resize", result.Timings.Resize).
			Dur("encode", result.Timings.Encode).
			Msg("image processed")
	}

	writeResponse(w, domain.PolicyFor(outcome), result.Image)
}

func writeResponse(w http.ResponseWriter, policy domain.ResponsePolicy, image []byte) {
	w.Header().Set("Cache-Control", policy.CacheControl)
	if policy.ContentType != "" {
		w.Header().Set("Content-Type", policy.ContentType)
	}
	w.WriteHeader(policy.Status)

	if len(image) > 0 {
		_, _ = w.Write(image)
		return
	}
	if policy.Body != "" {
		_, _ = w.Write([]byte(policy.Body))
	}
}

// sniffedType names the detected source content type for log lines.
func sniffedType(t string) string {
	if t == "" {
		return "unknown"
	}
	return t
}

// queryDimension reads a dimension from its long query parameter name,
// falling back to the short alias. The long name wins when both are given.
func queryDimension(values url.Values, name, alias string) (int, error) {
	raw := values.Get(name)
	if raw == "" {
		raw = values.Get(alias)
	}
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s parameter: %q", name, raw)
	}

	return n, nil
}
