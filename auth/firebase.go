package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go"
	firebaseauth "firebase.google.com/go/auth"
	"github.com/Gameminde/Zinouchawebsie/config"
	"google.golang.org/api/option"
)

// Identity is what the identity provider vouches for.
type Identity struct {
	UID       string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

type FirebaseVerifier struct {
	client    *firebaseauth.Client
	projectID string
}

// NewFirebaseVerifier builds the Firebase auth client from the credentials JSON blob.
func NewFirebaseVerifier(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseVerifier, error) {
	if cfg.CredentialsJSON == "" || cfg.ProjectID == "" {
		return nil, errors.New("firebase credentials and project id must be set")
	}

	opt := option.WithCredentialsJSON([]byte(cfg.CredentialsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client, projectID: cfg.ProjectID}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid firebase id token: %w", err)
	}
	if token.Audience != v.projectID {
		return nil, errors.New("invalid token audience")
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	first, last := splitName(name)

	return &Identity{
		UID:       token.UID,
		Email:     email,
		FirstName: first,
		LastName:  last,
		Picture:   picture,
	}, nil
}

func splitName(name string) (string, string) {
	first, last, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first, strings.TrimSpace(last)
}
