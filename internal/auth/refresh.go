package auth

import (
	"context"
	"dropdate/internal/logger"
	"errors"
	"fmt"
	"net/http"
	"strings"

	dbxauth "github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var ErrRefreshNotConfigured = errors.New("dropbox refresh credentials are not configured")

type Refresher struct {
	tokenURL   string
	httpClient *http.Client
}

type RefresherOption func(*Refresher)

func WithHTTPClient(c *http.Client) RefresherOption {
	return func(r *Refresher) {
		r.httpClient = c
	}
}

func NewRefresher(tokenURL string, opts ...RefresherOption) *Refresher {
	r := &Refresher{tokenURL: tokenURL}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Refresh exchanges the refresh token for a new access token and stores it
// in cred. It makes exactly one request and never retries.
func (r *Refresher) Refresh(ctx context.Context, cred *Credential) error {
	if !cred.CanRefresh() {
		return ErrRefreshNotConfigured
	}

	if r.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
	}

	cfg := oauthConfig(cred.AppKey, cred.AppSecret, r.tokenURL)
	token, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken}).Token()
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			fields = append(fields, zap.Int("status", rErr.Response.StatusCode))
		}

		logger.Log.Error("dropbox token refresh failed", fields...)
		return fmt.Errorf("failed to refresh dropbox token: %w", err)
	}

	cred.Update(token.AccessToken)
	logger.Log.Info("dropbox access token refreshed")

	return nil
}

// IsExpiredToken reports whether err is Dropbox rejecting an expired access
// token. Other auth errors (revoked, invalid) are not recoverable by refresh.
func IsExpiredToken(err error) bool {
	if err == nil {
		return false
	}

	var apiErr dbxauth.AuthAPIError
	if errors.As(err, &apiErr) &&
		apiErr.AuthError != nil &&
		apiErr.AuthError.Tag == dbxauth.AuthErrorExpiredAccessToken {
		return true
	}

	return strings.Contains(err.Error(), dbxauth.AuthErrorExpiredAccessToken)
}

func IsAuthError(err error) bool {
	var apiErr dbxauth.AuthAPIError
	if errors.As(err, &apiErr) {
		return true
	}

	return IsExpiredToken(err)
}
