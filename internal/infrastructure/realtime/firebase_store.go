package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

const googleTokenURI = "https://oauth2.googleapis.com/token"

// FirebaseCredentials are the service-account values needed to reach a
// Firebase Realtime Database.
type FirebaseCredentials struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
	DatabaseURL string
}

func (c FirebaseCredentials) complete() bool {
	return c.ProjectID != "" && c.ClientEmail != "" && c.PrivateKey != "" && c.DatabaseURL != ""
}

// serviceAccountJSON renders the minimal service-account document accepted
// by option.WithCredentialsJSON.
func (c FirebaseCredentials) serviceAccountJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   c.ProjectID,
		"client_email": c.ClientEmail,
		"private_key":  strings.ReplaceAll(c.PrivateKey, `\n`, "\n"),
		"token_uri":    googleTokenURI,
	})
}

// FirebaseConnector builds a Firebase app from the credentials and opens its
// database client. Missing credentials yield ErrNotConfigured.
func FirebaseConnector(creds FirebaseCredentials) Connector {
	return func(ctx context.Context) (ports.RealtimeStore, error) {
		if !creds.complete() {
			return nil, fmt.Errorf("%w: FIREBASE_PROJECT_ID, FIREBASE_CLIENT_EMAIL, FIREBASE_PRIVATE_KEY and FIREBASE_DATABASE_URL are required", ErrNotConfigured)
		}

		account, err := creds.serviceAccountJSON()
		if err != nil {
			return nil, fmt.Errorf("firebase credentials: %w", err)
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{
			ProjectID:   creds.ProjectID,
			DatabaseURL: creds.DatabaseURL,
		}, option.WithCredentialsJSON(account))
		if err != nil {
			return nil, fmt.Errorf("firebase app: %w", err)
		}

		client, err := app.Database(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase database: %w", err)
		}
		return NewFirebaseStore(client), nil
	}
}

// FirebaseStore adapts the Firebase Realtime Database client.
type FirebaseStore struct {
	client *db.Client
}

func NewFirebaseStore(client *db.Client) *FirebaseStore {
	return &FirebaseStore{client: client}
}

func (f *FirebaseStore) Get(ctx context.Context, path string) (domain.Record, error) {
	var v any
	if err := f.client.NewRef(path).Get(ctx, &v); err != nil {
		return nil, fmt.Errorf("firebase get %s: %w", path, err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	return domain.Record(doc), nil
}

// Exists uses a shallow read so whole collections are not downloaded.
func (f *FirebaseStore) Exists(ctx context.Context, path string) (bool, error) {
	var v any
	if err := f.client.NewRef(path).GetShallow(ctx, &v); err != nil {
		return false, fmt.Errorf("firebase exists %s: %w", path, err)
	}
	return v != nil, nil
}

func (f *FirebaseStore) Set(ctx context.Context, path string, value domain.Record) error {
	if err := f.client.NewRef(path).Set(ctx, map[string]any(value)); err != nil {
		return fmt.Errorf("firebase set %s: %w", path, err)
	}
	return nil
}

func (f *FirebaseStore) Update(ctx context.Context, path string, fields domain.Record) error {
	if len(fields) == 0 {
		return nil
	}
	if err := f.client.NewRef(path).Update(ctx, map[string]any(fields)); err != nil {
		return fmt.Errorf("firebase update %s: %w", path, err)
	}
	return nil
}

func (f *FirebaseStore) Remove(ctx context.Context, path string) error {
	if err := f.client.NewRef(path).Delete(ctx); err != nil {
		return fmt.Errorf("firebase remove %s: %w", path, err)
	}
	return nil
}

// QueryEqual filters server side; the database needs an ".indexOn" rule for
// child.
func (f *FirebaseStore) QueryEqual(ctx context.Context, path, child string, value any) (map[string]domain.Record, error) {
	var v map[string]any
	if err := f.client.NewRef(path).OrderByChild(child).EqualTo(value).Get(ctx, &v); err != nil {
		return nil, fmt.Errorf("firebase query %s %s: %w", path, child, err)
	}
	return childRecords(v), nil
}
