package storage

import (
	"context"
	"io"
)

// UploadInput describes one roster export to persist. ContentDisposition is
// forwarded to the store so downloads come back as named attachments rather
// than inline documents.
type UploadInput struct {
	Key                string
	ContentType        string
	ContentDisposition string
	Body               io.Reader
	Size               int64
}

// Service is the object-storage collaborator behind member exports.
// PutObject returns a URL the admin frontend can hand to the browser.
type Service interface {
	PutObject(ctx context.Context, in UploadInput) (string, error)
	DeleteObject(ctx context.Context, key string) error
}
