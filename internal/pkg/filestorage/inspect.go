package filestorage

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/tpcell/portal/internal/pkg/apperrors"
)

// Inspector enforces the upload size limit and MIME allow-list. The type
// is sniffed from the content, never taken from the client.
type Inspector struct {
	maxBytes int64
	allowed  []string
}

// NewInspector creates an upload inspector
func NewInspector(maxBytes int64, allowed []string) *Inspector {
	return &Inspector{maxBytes: maxBytes, allowed: allowed}
}

// Inspect checks size and content of r and returns a reader positioned at
// the start of the content together with the detected MIME type.
func (i *Inspector) Inspect(r io.ReadSeeker, size int64) (string, error) {
	if size > i.maxBytes {
		return "", apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("file exceeds the %d MB limit", i.maxBytes>>20))
	}

	mtype, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	for _, allowed := range i.allowed {
		if mtype.Is(allowed) {
			return mtype.String(), nil
		}
	}
	return "", apperrors.NewCustomError(apperrors.ErrUnsupportedFileType,
		fmt.Sprintf("file type %s is not allowed", mtype.String()))
}

var folderPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-./]*$`)

// cleanFolder rejects traversal and odd characters in a client supplied path
func cleanFolder(folder string) (string, error) {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return "", nil
	}
	if !folderPattern.MatchString(folder) {
		return "", apperrors.NewBadRequestError("invalid folder name")
	}
	for _, segment := range strings.Split(folder, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return "", apperrors.NewBadRequestError("invalid folder name")
		}
	}
	return folder, nil
}

func objectName(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}

func joinObjectPath(folder, name string) string {
	if folder == "" {
		return name
	}
	return folder + "/" + name
}
