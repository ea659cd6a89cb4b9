package port

import (
	"context"

	"github.com/remtori/image-resize/internal/core/domain"
)

type ImageProcessor interface {
	// Process runs the fetch, decode, resize and encode stages for one
	// request. The returned result carries the facts gathered up to the
	// point of failure even when the error is non-nil.
	Process(ctx context.Context, req domain.ResizeRequest) (domain.Result, error)
}
