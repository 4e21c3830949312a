package filestorage

import (
	"context"
	"io"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	URL      string // Public URL of the stored object
	Path     string // Object path relative to the storage root
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // Detected MIME type
}

// Object is an upload ready to be stored
type Object struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores obj under folder with a generated name
	Save(ctx context.Context, obj *Object, folder string) (*FileInfo, error)

	// Delete removes the object behind a URL returned by Save
	Delete(ctx context.Context, fileURL string) error
}
