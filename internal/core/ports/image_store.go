package ports

import "context"

// ImageStore keeps uploaded home images in object storage.
type ImageStore interface {
	// Put stores the object under key and returns its public URL.
	Put(ctx context.Context, key string, upload ImageUpload) (string, error)
	DeletePrefix(ctx context.Context, prefix string) error
}
