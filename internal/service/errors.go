package service

import "fmt"

// ValidationReason identifies which upload precondition failed.
type ValidationReason string

const (
	ReasonMissingFilename ValidationReason = "missing_filename"
	ReasonUnsupportedType ValidationReason = "unsupported_type"
	ReasonTooLarge        ValidationReason = "too_large"
	ReasonEmpty           ValidationReason = "empty"
)

// ValidationError rejects an upload before any durable side effect.
type ValidationError struct {
	Reason ValidationReason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid upload: %s", e.Reason)
}

// DecodeError means the upload bytes are not a decodable image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode image: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
