package port

import (
	"context"
	"io"
	"time"
)

// StoredObject describes one document in the remote store.
type StoredObject struct {
	Key       string
	Name      string
	SizeBytes int64
	CreatedAt time.Time
}

// ListInput narrows a listing to a folder prefix, a creation cutoff, and a
// maximum result count. Results are newest-first; MaxFiles <= 0 means no cap.
type ListInput struct {
	Prefix   string
	Since    time.Time
	MaxFiles int
}

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage abstracts the cloud document store the batch driver pulls
// GRN PDFs from. List returns PDF objects only.
type ObjectStorage interface {
	List(ctx context.Context, input ListInput) ([]StoredObject, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Upload(ctx context.Context, input UploadInput) error
}
