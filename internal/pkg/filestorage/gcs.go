package filestorage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/tpcell/portal/internal/pkg/logger"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSStorage stores uploads as public-read objects in a Cloud Storage
// bucket. Credentials come from the environment
// (GOOGLE_APPLICATION_CREDENTIALS or the metadata server).
type GCSStorage struct {
	client    *storage.Client
	bucket    string
	publicURL string
}

// NewGCSStorage creates a bucket backed storage. publicURL defaults to the
// storage.googleapis.com address of the bucket.
func NewGCSStorage(ctx context.Context, bucket, publicURL string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if publicURL == "" {
		publicURL = gcsPublicHost + "/" + bucket
	}
	return &GCSStorage{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Save uploads obj to folder/<uuid><ext>
func (g *GCSStorage) Save(ctx context.Context, obj *Object, folder string) (*FileInfo, error) {
	folder, err := cleanFolder(folder)
	if err != nil {
		return nil, err
	}
	objectPath := joinObjectPath(folder, objectName(obj.Filename))

	w := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	w.CacheControl = "no-cache"
	w.ContentType = obj.ContentType
	w.ACL = []storage.ACLRule{{Entity: storage.AllUsers, Role: storage.RoleReader}}

	written, err := io.Copy(w, obj.Reader)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize object: %w", err)
	}

	logger.Info().Str("bucket", g.bucket).Str("object", objectPath).Msg("File uploaded to bucket")
	return &FileInfo{
		URL:      g.publicURL + "/" + objectPath,
		Path:     objectPath,
		Filename: obj.Filename,
		FileSize: written,
		MimeType: obj.ContentType,
	}, nil
}

// Delete removes the object behind fileURL
func (g *GCSStorage) Delete(ctx context.Context, fileURL string) error {
	objectPath, ok := strings.CutPrefix(fileURL, g.publicURL+"/")
	if !ok || objectPath == "" {
		return fmt.Errorf("file %s is not managed by this storage", fileURL)
	}
	err := g.client.Bucket(g.bucket).Object(objectPath).Delete(ctx)
	if err != nil && err != storage.ErrObjectNotExist {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Close releases the underlying client
func (g *GCSStorage) Close() error {
	return g.client.Close()
}
