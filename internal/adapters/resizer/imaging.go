package resizer

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/remtori/image-resize/internal/core/domain"
)

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// ImagingResizer scales pixel buffers with a resampling filter fixed at
// construction time. The same kernel is used for every request.
type ImagingResizer struct {
	filter imaging.ResampleFilter
	name   string
}

func NewImagingResizer(filterName string) (*ImagingResizer, error) {
	name := strings.ToLower(strings.TrimSpace(filterName))

	filter, ok := filters[name]
	if !ok {
		return nil, fmt.Errorf("unknown resample filter %q", filterName)
	}

	return &ImagingResizer{filter: filter, name: name}, nil
}

// FilterName returns the normalized name of the configured filter.
func (r *ImagingResizer) FilterName() string {
	return r.name
}

// Resize scales img to exactly the target size, stretching if the aspect
// ratios differ. Both upscaling and downscaling are supported.
func (r *ImagingResizer) Resize(img *image.NRGBA, target domain.Size) (*image.NRGBA, error) {
	if img == nil {
		return nil, errors.New("nil source image")
	}
	if img.Rect.Dx() < 1 || img.Rect.Dy() < 1 {
		return nil, fmt.Errorf("empty source image %dx%d", img.Rect.Dx(), img.Rect.Dy())
	}
	if target.Width < 1 || target.Height < 1 {
		return nil, fmt.Errorf("invalid target dimensions %dx%d", target.Width, target.Height)
	}

	out := imaging.Resize(img, target.Width, target.Height, r.filter)

	if out.Rect.Dx() != target.Width || out.Rect.Dy() != target.Height {
		return nil, fmt.Errorf("resampler produced %dx%d instead of %dx%d",
			out.Rect.Dx(), out.Rect.Dy(), target.Width, target.Height)
	}

	return out, nil
}
