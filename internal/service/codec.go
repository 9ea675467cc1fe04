package service

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"

	// webp uploads are allowed; jpeg/png/gif decoders come in with imaging.
	_ "golang.org/x/image/webp"
)

const (
	thumbnailBound   = 300
	thumbnailQuality = 85
	originalQuality  = 95
)

// ImageCodec turns an upload buffer into the two stored renditions. Pure
// byte-to-byte transforms, no disk access.
type ImageCodec struct{}

func NewImageCodec() *ImageCodec {
	return &ImageCodec{}
}

// Thumbnail decodes data, scales it to fit within 300x300 preserving aspect
// ratio (never upscaling), and re-encodes as JPEG.
func (c *ImageCodec) Thumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	thumb := imaging.Fit(img, thumbnailBound, thumbnailBound, imaging.Lanczos)
	return encodeJPEG(thumb, thumbnailQuality)
}

// Original decodes data and re-encodes it as a quality-preserving JPEG,
// normalizing whatever format was uploaded.
func (c *ImageCodec) Original(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return encodeJPEG(img, originalQuality)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
