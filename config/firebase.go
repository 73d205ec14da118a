package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ServiceAccount holds the fields read from a Firebase service account key.
type ServiceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
}

// ReadServiceAccount parses the service account key at path.
func ReadServiceAccount(path string) (*ServiceAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read firebase credentials: %w", err)
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("failed to parse firebase credentials: %w", err)
	}
	return &sa, nil
}

// ProjectID returns FIREBASE_PROJECT_ID or, when unset, the project of the
// service account key.
func (c Config) ProjectID() (string, error) {
	if c.FirebaseProjectID != "" {
		return c.FirebaseProjectID, nil
	}
	sa, err := ReadServiceAccount(c.FirebaseCredentials)
	if err != nil {
		return "", err
	}
	if sa.ProjectID == "" {
		return "", fmt.Errorf("project_id missing from %s", c.FirebaseCredentials)
	}
	return sa.ProjectID, nil
}
