package port

import (
	"context"

	"github.com/remtori/image-resize/internal/core/domain"
)

type SourceResolver interface {
	// Resolve returns the raw bytes for a relative path together with the
	// origin that served them. It returns an error wrapping
	// domain.ErrSourceNotFound when no configured origin has the path.
	Resolve(ctx context.Context, path string) ([]byte, domain.SourceType, error)
}
