package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Murmur/config"
)

func initTestUploads(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := InitUploadStore(&config.Config{UploadsPath: dir, MaxUploadMB: 1}); err != nil {
		t.Fatalf("InitUploadStore: %v", err)
	}
	return dir
}

func formFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/user/photo", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("photo")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	return file, header
}

func pngPayload(size int) []byte {
	payload := make([]byte, size)
	copy(payload, "\x89PNG\r\n\x1a\n")
	return payload
}

func TestSaveUploadAcceptedTypes(t *testing.T) {
	dir := initTestUploads(t)

	tests := []struct {
		name    string
		content []byte
		wantExt string
	}{
		{name: "png", content: pngPayload(64), wantExt: ".png"},
		{name: "jpeg", content: append([]byte("\xff\xd8\xff\xe0"), make([]byte, 32)...), wantExt: ".jpg"},
		{name: "gif", content: append([]byte("GIF89a"), make([]byte, 32)...), wantExt: ".gif"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			file, header := formFile(t, "picture.bin", test.content)
			defer file.Close()

			fileRef, err := SaveUpload(file, header)
			if err != nil {
				t.Fatalf("SaveUpload: %v", err)
			}
			if !strings.HasPrefix(fileRef, "/uploads/") {
				t.Errorf("file ref %q not under /uploads/", fileRef)
			}
			if !strings.HasSuffix(fileRef, test.wantExt) {
				t.Errorf("file ref %q: want extension %s", fileRef, test.wantExt)
			}

			stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(fileRef)))
			if err != nil {
				t.Fatalf("read stored file: %v", err)
			}
			if !bytes.Equal(stored, test.content) {
				t.Errorf("stored content differs from upload (%d vs %d bytes)", len(stored), len(test.content))
			}
		})
	}
}

func TestSaveUploadRejectsOversize(t *testing.T) {
	dir := initTestUploads(t)

	// 2MB against a 1MB limit.
	file, header := formFile(t, "big.png", pngPayload(2<<20))
	defer file.Close()

	_, err := SaveUpload(file, header)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// A rejected upload must write nothing.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty upload dir, found %d entries", len(entries))
	}
}

func TestSaveUploadRejectsNonImage(t *testing.T) {
	dir := initTestUploads(t)

	file, header := formFile(t, "notes.png", []byte("just some text pretending to be a png"))
	defer file.Close()

	_, err := SaveUpload(file, header)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty upload dir, found %d entries", len(entries))
	}
}

func TestRemoveUpload(t *testing.T) {
	dir := initTestUploads(t)

	file, header := formFile(t, "p.png", pngPayload(32))
	defer file.Close()

	fileRef, err := SaveUpload(file, header)
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}

	RemoveUpload(fileRef)

	if _, err := os.Stat(filepath.Join(dir, filepath.Base(fileRef))); !os.IsNotExist(err) {
		t.Errorf("expected file removed, stat err = %v", err)
	}

	// Removing again or removing nothing must not panic.
	RemoveUpload(fileRef)
	RemoveUpload("")
}
