package validator

import (
	"bytes"
	"fmt"

	"github.com/capgen/backend/internal/models"
)

// Allowed image MIME types.
const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	WebP = "image/webp"
	GIF  = "image/gif"
)

// Validator checks uploads before any provider call. It trusts byte
// signatures, never the client-declared content type.
type Validator struct {
	maxSize int64
}

func New(maxSize int64) *Validator {
	return &Validator{maxSize: maxSize}
}

func (v *Validator) MaxSize() int64 { return v.maxSize }

// Validate accepts raw upload bytes and the client-declared content type and
// returns the sniffed MIME type. Failures are *models.ValidationError.
func (v *Validator) Validate(data []byte, declared string) (string, error) {
	if len(data) == 0 {
		return "", &models.ValidationError{
			Reason: models.ReasonUnsupportedType,
			Detail: "file is empty",
		}
	}
	if int64(len(data)) > v.maxSize {
		return "", &models.ValidationError{
			Reason: models.ReasonTooLarge,
			Detail: fmt.Sprintf("file is %d bytes, maximum %d", len(data), v.maxSize),
		}
	}

	mime := SniffMimeType(data)
	if mime == "" {
		return "", &models.ValidationError{
			Reason: models.ReasonUnsupportedType,
			Detail: fmt.Sprintf("unsupported image type (declared %q), allowed: jpeg, png, webp, gif", declared),
		}
	}
	return mime, nil
}

// SniffMimeType identifies an image by its byte signature. Returns "" when
// the bytes match none of the allowed formats.
func SniffMimeType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return JPEG
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return PNG
	case bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")):
		return GIF
	case len(data) >= 12 && bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WebP
	}
	return ""
}
