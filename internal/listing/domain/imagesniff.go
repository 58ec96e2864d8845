package domain

import "bytes"

const (
	MimeJPEG        = "image/jpeg"
	MimePNG         = "image/png"
	MimeWebP        = "image/webp"
	MimeOctetStream = "application/octet-stream"
)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47}
	riffSignature = []byte("RIFF")
)

// DetectPhotoContentType infers a MIME type from the leading bytes of a
// stored photo. It never inspects past offset 4 and never fails: buffers too
// short to sniff fall back to octet-stream, and unknown-but-present data is
// treated as JPEG so it stays displayable.
func DetectPhotoContentType(data []byte) string {
	if len(data) < 4 {
		return MimeOctetStream
	}
	if data[0] == 0xFF && data[1] == 0xD8 {
		return MimeJPEG
	}
	if bytes.HasPrefix(data, pngSignature) {
		return MimePNG
	}
	if bytes.HasPrefix(data, riffSignature) {
		return MimeWebP
	}
	return MimeJPEG
}
