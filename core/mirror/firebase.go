package mirror

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"
)

// FirebaseStore is a Store backed by the Firebase Realtime Database.
type FirebaseStore struct {
	client *db.Client
}

// NewFirebaseStore initialises a Firebase app with the service account key and opens
// the realtime database at cfg.DatabaseURL.
func NewFirebaseStore(ctx context.Context, cfg Config) (*FirebaseStore, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("mirror database url is not configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.DatabaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open realtime database: %w", err)
	}

	return &FirebaseStore{client: client}, nil
}

// Get reads the subtree at path.
func (f *FirebaseStore) Get(ctx context.Context, path string) (any, error) {
	var v any
	if err := f.ref(path).Get(ctx, &v); err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return v, nil
}

// Set writes value at path.
func (f *FirebaseStore) Set(ctx context.Context, path string, value any) error {
	if err := f.ref(path).Set(ctx, value); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// Delete removes the subtree at path.
func (f *FirebaseStore) Delete(ctx context.Context, path string) error {
	if err := f.ref(path).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete %q: %w", path, err)
	}
	return nil
}

func (f *FirebaseStore) ref(path string) *db.Ref {
	return f.client.NewRef("/" + Join(path))
}
