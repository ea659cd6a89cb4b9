package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"

	// Registers webp with image.Decode on top of the formats imaging brings.
	_ "golang.org/x/image/webp"
)

// ImagingCodec converts between encoded image bytes and raw pixel buffers.
// Decoding accepts every format registered with image.Decode; encoding always
// produces JPEG at the encoder's default quality.
type ImagingCodec struct{}

func NewImagingCodec() *ImagingCodec {
	return &ImagingCodec{}
}

// Decode parses data into an NRGBA pixel buffer. Any alpha channel is carried
// along until JPEG encoding flattens it.
func (c *ImagingCodec) Decode(data []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() < 1 || bounds.Dy() < 1 {
		return nil, fmt.Errorf("decoded image has no pixels: %dx%d", bounds.Dx(), bounds.Dy())
	}

	return imaging.Clone(img), nil
}

func (c *ImagingCodec) EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("error encoding jpeg %w", err)
	}

	return buf.Bytes(), nil
}
