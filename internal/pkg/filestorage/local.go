package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tpcell/portal/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The URL prefix the directory is served under
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is the public prefix files are served from, e.g. http://host/uploads.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes obj to basePath/folder under a unique name
func (ls *LocalStorage) Save(ctx context.Context, obj *Object, folder string) (*FileInfo, error) {
	folder, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(folder))
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := objectName(obj.Filename)
	dstPath := filepath.Join(fullDirPath, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, obj.Reader)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := joinObjectPath(folder, name)
	info := &FileInfo{
		URL:      ls.baseURL + "/" + relPath,
		Path:     relPath,
		Filename: obj.Filename,
		FileSize: written,
		MimeType: obj.ContentType,
	}

	logger.Info().Str("filename", obj.Filename).Str("saved_as", relPath).Msg("File saved successfully")
	return info, nil
}

// Delete removes a file previously returned by Save. Deleting a missing
// file succeeds.
func (ls *LocalStorage) Delete(ctx context.Context, fileURL string) error {
	relPath, ok := strings.CutPrefix(fileURL, ls.baseURL+"/")
	if !ok || relPath == "" {
		return fmt.Errorf("file %s is not managed by this storage", fileURL)
	}
	if _, err := cleanFolder(relPath); err != nil {
		return err
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
