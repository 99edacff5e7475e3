package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// Scope is the only OAuth scope requested. The service never writes calendar data.
const Scope = calendar.CalendarReadonlyScope

// NewHTTPClient returns an authenticated HTTP client for the Calendar API.
// Service account keys are used directly; OAuth client files need a token
// previously issued for the same client, stored at tokenPath.
func NewHTTPClient(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, CredentialType, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, CredentialTypeUnknown, fmt.Errorf("unable to read credentials file: %w", err)
	}

	credType, err := DetectCredentialType(data)
	if err != nil {
		return nil, CredentialTypeUnknown, err
	}

	switch credType {
	case CredentialTypeServiceAccount:
		client, err := serviceAccountClient(ctx, data)
		return client, credType, err
	case CredentialTypeOAuthClient:
		client, err := oauthClient(ctx, data, tokenPath)
		return client, credType, err
	default:
		return nil, credType, fmt.Errorf("unsupported credential type %s", credType)
	}
}

// oauthClient builds a client from an OAuth client file and a stored token.
// There is no interactive consent flow in a server process, so a missing token is an error.
func oauthClient(ctx context.Context, data []byte, tokenPath string) (*http.Client, error) {
	if tokenPath == "" {
		return nil, fmt.Errorf("OAuth client credentials need token_file")
	}

	config, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse OAuth client file: %w", err)
	}

	tok, err := LoadToken(tokenPath)
	if err != nil {
		return nil, err
	}

	return config.Client(ctx, tok), nil
}
