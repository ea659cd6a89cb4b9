package domain

import "math"

// PlanTarget computes the output size for a source image of size src and the
// requested width and height, where zero means the dimension was not
// requested. With both dimensions requested they are used verbatim, even if
// that changes the aspect ratio. With one requested, the other is scaled to
// keep the source aspect ratio, rounding half away from zero. With neither,
// both axes shrink to a quarter of the source, truncating. The returned size
// is always at least 1x1.
func PlanTarget(src Size, width, height int) Size {
	var target Size

	switch {
	case width > 0 && height > 0:
		target = Size{Width: width, Height: height}
	case width > 0:
		ratio := float64(width) / float64(src.Width)
		target = Size{Width: width, Height: int(math.Round(float64(src.Height) * ratio))}
	case height > 0:
		ratio := float64(height) / float64(src.Height)
		target = Size{Width: int(math.Round(float64(src.Width) * ratio)), Height: height}
	default:
		target = Size{Width: src.Width / 4, Height: src.Height / 4}
	}

	if target.Width < 1 {
		target.Width = 1
	}
	if target.Height < 1 {
		target.Height = 1
	}

	return target
}
