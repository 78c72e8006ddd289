package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formFile builds a multipart request carrying one file and returns the
// parsed handle the way a controller would see it.
func formFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	return file, header
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateImageAcceptsPNG(t *testing.T) {
	file, header := formFile(t, "avatar.png", pngBytes(t))
	defer file.Close()

	img, err := ValidateImage(file, header)

	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.NotEqual(t, "avatar.png", img.Filename, "stored name must be regenerated")
	assert.Contains(t, img.Filename, ".png")
}

func TestValidateImageRejectsNonImageContent(t *testing.T) {
	file, header := formFile(t, "avatar.png", []byte("definitely not a picture"))
	defer file.Close()

	_, err := ValidateImage(file, header)

	assert.ErrorIs(t, err, ErrBadType)
}

func TestValidateImageRejectsExtensionMismatch(t *testing.T) {
	file, header := formFile(t, "avatar.gif", pngBytes(t))
	defer file.Close()

	_, err := ValidateImage(file, header)

	assert.ErrorIs(t, err, ErrBadType)
}

func TestValidateImageRejectsTruncatedImage(t *testing.T) {
	// A valid PNG header with a mangled body sniffs as image/png but does
	// not decode.
	data := pngBytes(t)
	data = data[:len(data)/2]
	file, header := formFile(t, "avatar.png", data)
	defer file.Close()

	_, err := ValidateImage(file, header)

	assert.ErrorIs(t, err, ErrNotImage)
}
