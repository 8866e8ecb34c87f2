package validation

import (
	"errors"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"

	"github.com/chai2010/webp"
)

var (
	ErrFileSize     = errors.New("file size exceeds limit of 5MB")
	ErrFileType     = errors.New("invalid file type. Allowed types: JPG, PNG, WEBP")
	ErrFileRequired = errors.New("no file provided")
)

const MaxImageSize = 5 * 1024 * 1024 // 5MB

// ValidateImage checks size and confirms the payload really decodes as an
// image of the advertised type, not just that the filename looks right.
// It returns the detected content type for storage alongside the blob.
func ValidateImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrFileRequired
	}

	if file.Size > MaxImageSize {
		return "", ErrFileSize
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", ErrFileType
	}
	contentType := http.DetectContentType(head[:n])

	if _, err := f.Seek(0, 0); err != nil {
		return "", err
	}

	switch contentType {
	case "image/jpeg":
		_, err = jpeg.DecodeConfig(f)
	case "image/png":
		_, err = png.DecodeConfig(f)
	case "image/webp":
		_, err = webp.DecodeConfig(f)
	default:
		return "", ErrFileType
	}
	if err != nil {
		return "", ErrFileType
	}

	return contentType, nil
}
