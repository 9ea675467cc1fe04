package service

import (
	"bytes"
	"fmt"
	"io"
)

// Upload bodies are read in 1 MiB chunks so the size ceiling is enforced
// incrementally, before the whole body is buffered.
const chunkSize = 1 << 20

var validTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/webp": {},
}

// Validator enforces upload preconditions while streaming the body.
type Validator struct {
	maxSize int64
}

func NewValidator(maxSize int64) *Validator {
	return &Validator{maxSize: maxSize}
}

// Validate checks filename, content type and size, and returns the full
// upload buffer on success. This is the only point where the whole upload
// is held in memory at once; the codecs need complete buffers.
func (v *Validator) Validate(file io.Reader, fileName, contentType string) ([]byte, error) {
	if fileName == "" {
		return nil, &ValidationError{Reason: ReasonMissingFilename}
	}
	if _, ok := validTypes[contentType]; !ok {
		return nil, &ValidationError{Reason: ReasonUnsupportedType}
	}

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	var total int64
	for {
		n, err := file.Read(chunk)
		if n > 0 {
			total += int64(n)
			if total > v.maxSize {
				return nil, &ValidationError{Reason: ReasonTooLarge}
			}
			buf.Write(chunk[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}
	}

	if total == 0 {
		return nil, &ValidationError{Reason: ReasonEmpty}
	}
	return buf.Bytes(), nil
}
