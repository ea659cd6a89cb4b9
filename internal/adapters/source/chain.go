package source

import (
	"context"
	"errors"

	"github.com/remtori/image-resize/internal/core/domain"
	"go.uber.org/multierr"
)

// Source is a single origin the chain can try.
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	Type() domain.SourceType
}

// Chain resolves a path against its sources in order and returns the first
// hit. Fetch failures count as misses and the next source is tried, except a
// cancelled or timed out context which aborts the whole lookup.
type Chain struct {
	sources []Source
}

func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

func (c *Chain) Resolve(ctx context.Context, path string) ([]byte, domain.SourceType, error) {
	var misses error

	for _, src := range c.sources {
		buf, err := src.Fetch(ctx, path)
		if err == nil {
			return buf, src.Type(), nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, "", err
		}
		misses = multierr.Append(misses, err)
	}

	return nil, "", multierr.Append(domain.ErrSourceNotFound, misses)
}
