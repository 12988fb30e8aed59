package services

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"Murmur/config"
)

var (
	uploadsPath    string
	maxUploadBytes int64
)

var uploadExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

func InitUploadStore(cfg *config.Config) error {
	uploadsPath = cfg.UploadsPath
	maxUploadBytes = cfg.MaxUploadMB << 20

	if _, err := os.Stat(uploadsPath); os.IsNotExist(err) {
		if err := os.MkdirAll(uploadsPath, 0755); err != nil {
			return fmt.Errorf("failed to create uploads directory: %w", err)
		}
	}
	return nil
}

// UploadsDir returns the directory uploads are written to, for static serving.
func UploadsDir() string {
	return uploadsPath
}

// SaveUpload validates and stores one uploaded image, returning its public
// reference. Size and content type are checked before anything touches disk;
// a rejected upload writes no file. The content type comes from sniffing the
// payload, not from the client's filename or header.
func SaveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds %dMB limit", ErrValidation, maxUploadBytes>>20)
	}

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	ext, ok := uploadExtensions[http.DetectContentType(head)]
	if !ok {
		return "", fmt.Errorf("%w: only jpeg, png and gif images are allowed", ErrValidation)
	}

	// High-resolution timestamp names keep concurrent uploads from ever
	// targeting the same file.
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	destPath := filepath.Join(uploadsPath, name)

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer out.Close()

	if _, err := out.Write(head); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if _, err := io.Copy(out, io.LimitReader(file, maxUploadBytes-int64(len(head)))); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "/uploads/" + name, nil
}

// RemoveUpload deletes a stored file by its public reference. Best effort:
// the owning record is already updated or gone, so an orphaned file is an
// acceptable degraded state and failure is only logged.
func RemoveUpload(fileRef string) {
	if fileRef == "" {
		return
	}
	path := filepath.Join(uploadsPath, filepath.Base(fileRef))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove uploaded file", "file", path, "error", err)
	}
}
