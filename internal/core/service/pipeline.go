package service

import (
	"context"
	"time"

	"github.com/h2non/filetype"
	"github.com/remtori/image-resize/internal/core/domain"
	"github.com/remtori/image-resize/internal/core/port"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// Pipeline runs the fetch, decode, plan, resize and encode stages for one
// request. It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	resolver port.SourceResolver
	codec    port.ImageCodec
	resizer  port.ImageResizer
}

func NewPipeline(resolver port.SourceResolver, codec port.ImageCodec, resizer port.ImageResizer) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		codec:    codec,
		resizer:  resizer,
	}
}

// Process resolves the source bytes, decodes them, plans the target size and
// produces the resized JPEG. The returned Result keeps whatever facts were
// gathered before a stage failed, so callers can log and meter failures too.
func (p *Pipeline) Process(ctx context.Context, req domain.ResizeRequest) (domain.Result, error) {
	result := domain.Result{Path: req.Path}

	start := time.Now()
	data, sourceType, err := p.resolver.Resolve(ctx, req.Path)
	result.Timings.Fetch = time.Since(start)
	if err != nil {
		return result, err
	}
	result.Source = sourceType

	if kind, merr := filetype.Match(data); merr == nil && kind != filetype.Unknown {
		result.FileType = kind.MIME.Value
	}

	start = time.Now()
	img, err := p.codec.Decode(data)
	result.Timings.Decode = time.Since(start)
	if err != nil {
		return result, multierr.Append(domain.ErrDecodeFailed, err)
	}
	result.Original = domain.Size{Width: img.Rect.Dx(), Height: img.Rect.Dy()}

	result.Target = domain.PlanTarget(result.Original, req.Width, req.Height)

	start = time.Now()
	resized, err := p.resizer.Resize(img, result.Target)
	result.Timings.Resize = time.Since(start)
	if err != nil {
		return result, multierr.Append(domain.ErrResizeFailed, err)
	}

	start = time.Now()
	encoded, err := p.codec.EncodeJPEG(resized)
	result.Timings.Encode = time.Since(start)
	if err != nil {
		log.Panic().Err(err).Str("path", req.Path).Msg("jpeg encoder failed on a valid buffer")
	}
	result.Image = encoded

	return result, nil
}
