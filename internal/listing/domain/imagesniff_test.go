package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPhotoContentType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"jpeg signature", []byte{0xFF, 0xD8, 0x00, 0x00}, MimeJPEG},
		{"png signature", []byte{0x89, 0x50, 0x4E, 0x47}, MimePNG},
		{"riff webp signature", []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00}, MimeWebP},
		{"unknown signature falls back to jpeg", []byte{0x00, 0x01, 0x02, 0x03}, MimeJPEG},
		{"two bytes", []byte{0x00, 0x01}, MimeOctetStream},
		{"nil buffer", nil, MimeOctetStream},
		{"empty buffer", []byte{}, MimeOctetStream},
		{"short jpeg prefix still too small to sniff", []byte{0xFF, 0xD8, 0xFF}, MimeOctetStream},
		{"only first four bytes matter", append([]byte{0x89, 0x50, 0x4E, 0x47}, []byte("not a real png body")...), MimePNG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPhotoContentType(tt.data))
		})
	}
}
