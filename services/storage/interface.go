package storage

import (
	"context"
	"errors"
	"io"
)

// ErrStorageUnavailable is returned when no media backend is configured.
var ErrStorageUnavailable = errors.New("media storage is not configured")

// StorageService stores user media and returns public URLs.
type StorageService interface {
	UploadProfilePhoto(ctx context.Context, uid string, file io.Reader) (string, error)
	DeleteProfilePhoto(ctx context.Context, uid string) error
}
