package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gigmarket/backend/internal/config"
)

const (
	DriverLocal      = "local"
	DriverCloudinary = "cloudinary"
)

// Object is a file handed to a Storage. Body is rewound before every attempt.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// Storage keeps uploaded files and hands back durable URLs for them.
type Storage interface {
	Put(ctx context.Context, obj Object) (string, error)
	Delete(ctx context.Context, url string) error
}

// New builds the configured driver wrapped with retries.
func New(cfg config.Storage) (Storage, error) {
	var (
		storage Storage
		err     error
	)

	switch cfg.Driver {
	case DriverLocal, "":
		storage, err = NewLocal(cfg.Local.Dir, cfg.Local.PublicURL)
	case DriverCloudinary:
		storage, err = NewCloudinary(CloudinaryConfig{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
			Folder:    cfg.Cloudinary.Folder,
		}, &http.Client{Timeout: cfg.Timeout})
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return WithRetry(storage, cfg.MaxTries, cfg.RetryInterval), nil
}

func rewind(obj Object) error {
	if _, err := obj.Body.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %s: %w", obj.Key, err)
	}
	return nil
}

func timestamp() string {
	return fmt.Sprintf("%d", time.Now().Unix())
}
