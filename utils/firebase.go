package utils

import (
	"context"
	"fmt"

	"studybuddy/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients groups the Firebase services used by the server.
type FirebaseClients struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
	Messaging *messaging.Client
}

// InitFirebase initializes the Firebase app from the service account key and
// opens the clients the configuration asks for.
func InitFirebase(ctx context.Context, cfg config.Config) (*FirebaseClients, error) {
	projectID, err := cfg.ProjectID()
	if err != nil {
		return nil, err
	}
	opt := option.WithCredentialsFile(cfg.FirebaseCredentials)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	clients := &FirebaseClients{App: app}

	if cfg.DBDriver == config.DriverFirestore {
		if clients.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
		}
	}
	if cfg.AuthDriver == config.AuthFirebase {
		if clients.Auth, err = app.Auth(ctx); err != nil {
			return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
		}
	}
	if cfg.NotificationsEnabled {
		if clients.Messaging, err = app.Messaging(ctx); err != nil {
			return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
		}
	}
	return clients, nil
}

// Close releases the Firestore connection.
func (f *FirebaseClients) Close() error {
	if f == nil || f.Firestore == nil {
		return nil
	}
	return f.Firestore.Close()
}
