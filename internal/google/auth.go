package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	gauth "golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	gmail "google.golang.org/api/gmail/v1"
	people "google.golang.org/api/people/v1"

	"dayplanner/pkg/config"
)

// ErrCredentialsUnavailable marks a missing or unreadable client secret or
// token file. Callers treat it as "run without Google ingestion" rather than
// a fatal startup error.
var ErrCredentialsUnavailable = errors.New("google credentials unavailable")

// NewHTTPClient builds an authenticated HTTP client from the stored OAuth
// client secrets and cached token. Obtaining the initial token is an offline
// step; the daemon only ever consumes a token that already exists.
func NewHTTPClient(ctx context.Context, cfg config.GoogleConfig) (*http.Client, error) {
	secrets, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read client secrets: %v", ErrCredentialsUnavailable, err)
	}

	oauthCfg, err := gauth.ConfigFromJSON(secrets,
		calendar.CalendarReadonlyScope,
		gmail.GmailReadonlyScope,
		people.ContactsReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}

	tok, err := tokenFromFile(cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: load token: %v", ErrCredentialsUnavailable, err)
	}

	return oauthCfg.Client(ctx, tok), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", path, err)
	}
	return tok, nil
}
