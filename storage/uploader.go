package storage

import (
	"bytes"
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader publishes generated artifacts (bracket skeletons, draw
// payloads) to object storage so hosts can download and verify them.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// UploadJSON stores a marshaled snapshot under key.
	UploadJSON(ctx context.Context, key string, body []byte) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

func uploadJSON(ctx context.Context, u FileUploader, key string, body []byte) (*UploadResult, error) {
	return u.Upload(ctx, key, "application/json", bytes.NewReader(body))
}
