// Package upload validates image uploads before they reach storage.
//
// A file passes only when every check holds: size under the configured cap,
// a sniffed content type in the allow-list, a matching file extension, and a
// successful image decode. The decode step catches files that merely carry
// an image header.
package upload

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/metrics"
)

var (
	// ErrTooLarge means the file exceeds MAX_UPLOAD_BYTES.
	ErrTooLarge = errors.New("upload: file too large")
	// ErrBadType means the sniffed content type or extension is not allowed.
	ErrBadType = errors.New("upload: file type not allowed")
	// ErrNotImage means the payload did not decode as an image.
	ErrNotImage = errors.New("upload: file is not a valid image")
)

// extensions maps each allowed content type to its acceptable extensions.
var extensions = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/gif":  {".gif"},
}

// Image is a validated upload ready to be stored.
type Image struct {
	// Filename is a random hex name with the original extension.
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ValidateImage reads and validates one uploaded file. On success it returns
// the file content under a freshly generated name.
func ValidateImage(file multipart.File, header *multipart.FileHeader) (*Image, error) {
	maxBytes := config.MaxUploadBytes()
	if header.Size > maxBytes {
		metrics.UploadsRejected.WithLabelValues("size").Inc()
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, header.Size, maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("upload: read: %w", err)
	}
	if int64(len(data)) > maxBytes {
		metrics.UploadsRejected.WithLabelValues("size").Inc()
		return nil, ErrTooLarge
	}

	// Sniff the real content type; the client-supplied header is not trusted.
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}

	if !allowedType(contentType) {
		metrics.UploadsRejected.WithLabelValues("type").Inc()
		return nil, fmt.Errorf("%w: %s", ErrBadType, contentType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extMatches(contentType, ext) {
		metrics.UploadsRejected.WithLabelValues("type").Inc()
		return nil, fmt.Errorf("%w: extension %q does not match %s", ErrBadType, ext, contentType)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		metrics.UploadsRejected.WithLabelValues("decode").Inc()
		return nil, ErrNotImage
	}

	return &Image{
		Filename:    randomName() + ext,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func allowedType(contentType string) bool {
	for _, t := range config.AllowedImageTypes() {
		if t == contentType {
			return true
		}
	}
	return false
}

func extMatches(contentType, ext string) bool {
	for _, e := range extensions[contentType] {
		if e == ext {
			return true
		}
	}
	return false
}

func randomName() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
