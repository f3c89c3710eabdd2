package storage

import (
	"strings"
	"testing"
)

func validUpload() *FileUpload {
	return &FileUpload{
		Filename:    "photo.jpg",
		Size:        1024,
		ContentType: "image/jpeg",
		Content:     strings.NewReader("fake image bytes"),
	}
}

func TestValidateImageAcceptsValidUpload(t *testing.T) {
	if msg := ValidateImage(validUpload()); msg != "" {
		t.Errorf("Expected valid upload to pass, got rejection: %q", msg)
	}
}

func TestValidateImageAllowedExtensions(t *testing.T) {
	for _, name := range []string{"a.jpg", "a.jpeg", "a.png", "a.gif", "a.bmp", "a.webp", "a.JPG", "a.PNG"} {
		file := validUpload()
		file.Filename = name
		switch strings.ToLower(name[strings.LastIndex(name, "."):]) {
		case ".png":
			file.ContentType = "image/png"
		case ".gif":
			file.ContentType = "image/gif"
		case ".bmp":
			file.ContentType = "image/bmp"
		case ".webp":
			file.ContentType = "image/webp"
		}
		if msg := ValidateImage(file); msg != "" {
			t.Errorf("Expected %q to be accepted, got rejection: %q", name, msg)
		}
	}
}

func TestValidateImageRejectsDisallowedExtension(t *testing.T) {
	file := validUpload()
	file.Filename = "document.txt"

	if msg := ValidateImage(file); msg == "" {
		t.Error("Expected .txt file to be rejected")
	}
}

func TestValidateImageRejectsMissingExtension(t *testing.T) {
	file := validUpload()
	file.Filename = "photo"

	if msg := ValidateImage(file); msg == "" {
		t.Error("Expected file without extension to be rejected")
	}
}

func TestValidateImageRejectsDisallowedMimeType(t *testing.T) {
	file := validUpload()
	file.ContentType = "application/octet-stream"

	if msg := ValidateImage(file); msg == "" {
		t.Error("Expected non-image MIME type to be rejected")
	}
}

func TestValidateImageRejectsOversizedFile(t *testing.T) {
	file := validUpload()
	file.Size = 6 * 1024 * 1024

	msg := ValidateImage(file)
	if msg == "" {
		t.Fatal("Expected 6MB file to be rejected")
	}
	if !strings.Contains(msg, "5MB") {
		t.Errorf("Expected the rejection to name the 5MB cap, got: %q", msg)
	}
}

func TestValidateImageBoundarySize(t *testing.T) {
	file := validUpload()
	file.Size = MaxImageSize
	if msg := ValidateImage(file); msg != "" {
		t.Errorf("Expected file at the exact cap to pass, got: %q", msg)
	}

	file.Size = MaxImageSize + 1
	if msg := ValidateImage(file); msg == "" {
		t.Error("Expected file one byte over the cap to be rejected")
	}
}

func TestValidateImageRejectsEmptyAndMissingFile(t *testing.T) {
	if msg := ValidateImage(nil); msg == "" {
		t.Error("Expected nil file to be rejected")
	}

	file := validUpload()
	file.Size = 0
	if msg := ValidateImage(file); msg == "" {
		t.Error("Expected empty file to be rejected")
	}
}
