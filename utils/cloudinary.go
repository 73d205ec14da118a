package utils

import (
	"studybuddy/config"
	"studybuddy/services/storage"
)

// Cloudinary returns the photo storage for the configured account, or nil
// when no credentials are set.
func Cloudinary(cfg config.Config) (storage.StorageService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, nil
	}
	cld, err := storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return cld, nil
}
