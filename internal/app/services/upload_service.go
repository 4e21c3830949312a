package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/pkg/filestorage"
)

// UploadService validates and stores uploaded files
type UploadService struct {
	storage   filestorage.FileStorage
	inspector *filestorage.Inspector
	logger    zerolog.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage filestorage.FileStorage, inspector *filestorage.Inspector, logger zerolog.Logger) *UploadService {
	return &UploadService{storage: storage, inspector: inspector, logger: logger}
}

// ownerFolder scopes uploads under the role and user id of the uploader.
// The storage backend rejects traversal segments in the result.
func ownerFolder(role models.RoleType, userID int64, folder string) string {
	base := fmt.Sprintf("%s/%d", strings.ToLower(string(role)), userID)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return base
	}
	return base + "/" + folder
}

// Upload sniffs the file type, enforces the size limit and stores the file
func (s *UploadService) Upload(ctx context.Context, userID int64, role models.RoleType, header *multipart.FileHeader, folder string) (*dto.UploadResponse, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mimeType, err := s.inspector.Inspect(file, header.Size)
	if err != nil {
		s.logger.Info().Err(err).Int64("userID", userID).Str("filename", header.Filename).Msg("Upload rejected")
		return nil, err
	}

	info, err := s.storage.Save(ctx, &filestorage.Object{
		Reader:      file,
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: mimeType,
	}, ownerFolder(role, userID, folder))
	if err != nil {
		return nil, err
	}

	return &dto.UploadResponse{
		URL:      info.URL,
		FileName: header.Filename,
		Size:     info.FileSize,
		MimeType: mimeType,
	}, nil
}
