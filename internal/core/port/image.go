package port

import (
	"image"

	"github.com/remtori/image-resize/internal/core/domain"
)

type ImageCodec interface {
	Decode(data []byte) (*image.NRGBA, error)
	EncodeJPEG(img image.Image) ([]byte, error)
}

type ImageResizer interface {
	Resize(img *image.NRGBA, target domain.Size) (*image.NRGBA, error)
}
