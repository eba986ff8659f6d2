package validator

import (
	"bytes"
	"errors"
	"testing"

	"github.com/capgen/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

func paddedImage(header []byte, size int) []byte {
	data := make([]byte, size)
	copy(data, header)
	return data
}

func TestValidate_Sniffing(t *testing.T) {
	v := New(1 << 20)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", pngBytes, PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}, JPEG},
		{"gif87a", []byte("GIF87a\x01\x00\x01\x00"), GIF},
		{"gif89a", []byte("GIF89a\x01\x00\x01\x00"), GIF},
		{"webp", append([]byte("RIFF\x24\x00\x00\x00WEBP"), []byte("VP8 ")...), WebP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := v.Validate(tt.data, "application/octet-stream")
			require.NoError(t, err)
			assert.Equal(t, tt.want, mime)
		})
	}
}

func TestValidate_RejectsUnsupportedType(t *testing.T) {
	v := New(1 << 20)

	// Declared type is ignored; bytes decide.
	_, err := v.Validate([]byte("%PDF-1.7 not an image"), "image/png")
	require.Error(t, err)

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, models.ReasonUnsupportedType, vErr.Reason)
}

func TestValidate_RejectsEmptyFile(t *testing.T) {
	v := New(1 << 20)

	_, err := v.Validate(nil, "image/png")
	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, models.ReasonUnsupportedType, vErr.Reason)
	assert.Contains(t, vErr.Detail, "empty")
}

func TestValidate_SizeBoundary(t *testing.T) {
	const max = 1024
	v := New(max)

	// Exactly max bytes passes.
	mime, err := v.Validate(paddedImage(pngBytes, max), "image/png")
	require.NoError(t, err)
	assert.Equal(t, PNG, mime)

	// One byte over fails with too_large.
	_, err = v.Validate(paddedImage(pngBytes, max+1), "image/png")
	require.Error(t, err)

	var vErr *models.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, models.ReasonTooLarge, vErr.Reason)
}

func TestSniffMimeType_ShortInput(t *testing.T) {
	assert.Empty(t, SniffMimeType([]byte("RI")))
	assert.Empty(t, SniffMimeType(bytes.Repeat([]byte{0x00}, 16)))
}
