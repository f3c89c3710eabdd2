package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxImageSize is the upload cap for product images.
const MaxImageSize = 5 * 1024 * 1024

var (
	allowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp"}
	allowedMimeTypes  = []string{"image/jpeg", "image/png", "image/gif", "image/bmp", "image/webp"}
)

// FileUpload carries an uploaded file's metadata and content stream through
// the pipeline. Validators inspect the metadata; only the handler consumes
// the stream.
type FileUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.Reader
}

// ValidateImage checks an upload against the image allow-lists and the size
// cap without consuming its content. A non-empty return value is the
// rejection message.
func ValidateImage(file *FileUpload) string {
	if file == nil {
		return "a file is required"
	}
	if file.Size == 0 {
		return "the file is empty"
	}
	if file.Size > MaxImageSize {
		return fmt.Sprintf("the file exceeds the maximum size of %dMB", MaxImageSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" || !contains(allowedExtensions, ext) {
		return fmt.Sprintf("extension not allowed; valid extensions: %s", strings.Join(allowedExtensions, ", "))
	}

	mime := strings.ToLower(file.ContentType)
	if mime == "" || !contains(allowedMimeTypes, mime) {
		return fmt.Sprintf("file type not allowed; valid types: %s", strings.Join(allowedMimeTypes, ", "))
	}

	return ""
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
