package service

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func validationReason(t *testing.T, err error) ValidationReason {
	t.Helper()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return validationErr.Reason
}

func TestValidateMissingFilename(t *testing.T) {
	v := NewValidator(1 << 20)
	_, err := v.Validate(bytes.NewReader([]byte("data")), "", "image/jpeg")
	if reason := validationReason(t, err); reason != ReasonMissingFilename {
		t.Fatalf("expected missing_filename, got %s", reason)
	}
}

func TestValidateUnsupportedType(t *testing.T) {
	v := NewValidator(1 << 20)
	_, err := v.Validate(bytes.NewReader([]byte("data")), "a.gif", "image/gif")
	if reason := validationReason(t, err); reason != ReasonUnsupportedType {
		t.Fatalf("expected unsupported_type, got %s", reason)
	}
}

func TestValidateEmptyBody(t *testing.T) {
	v := NewValidator(1 << 20)
	_, err := v.Validate(bytes.NewReader(nil), "a.jpg", "image/jpeg")
	if reason := validationReason(t, err); reason != ReasonEmpty {
		t.Fatalf("expected empty, got %s", reason)
	}
}

// countingReader serves an endless body and records how much was read, so
// the test can prove the validator stopped at the ceiling instead of
// buffering everything first.
type countingReader struct {
	read int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.read += int64(len(p))
	return len(p), nil
}

func TestValidateTooLargeAbortsMidStream(t *testing.T) {
	const maxSize = 2 << 20
	v := NewValidator(maxSize)
	reader := &countingReader{}
	_, err := v.Validate(reader, "big.jpg", "image/jpeg")
	if reason := validationReason(t, err); reason != ReasonTooLarge {
		t.Fatalf("expected too_large, got %s", reason)
	}
	// One chunk past the limit at most.
	if reader.read > maxSize+chunkSize {
		t.Fatalf("validator buffered %d bytes past the limit", reader.read)
	}
}

func TestValidateReturnsFullBuffer(t *testing.T) {
	v := NewValidator(1 << 20)
	payload := bytes.Repeat([]byte("x"), 1234)
	got, err := v.Validate(bytes.NewReader(payload), "a.png", "image/png")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("returned buffer does not match the upload")
	}
}

func TestValidateReadError(t *testing.T) {
	v := NewValidator(1 << 20)
	_, err := v.Validate(io.MultiReader(bytes.NewReader([]byte("x")), &failingReader{}), "a.jpg", "image/jpeg")
	if err == nil {
		t.Fatal("expected read error")
	}
}

type failingReader struct{}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("boom")
}
