package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
)

func serviceAccountClient(ctx context.Context, data []byte) (*http.Client, error) {
	config, err := google.JWTConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	// Tokens are minted on demand and cached by the returned client,
	// so one client serves the whole process lifetime.
	return config.Client(ctx), nil
}
