package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox"
	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"golang.org/x/oauth2"
)

const (
	dropboxAuthURL = "https://www.dropbox.com/oauth2/authorize"
	callbackAddr   = "localhost:9999"
)

func oauthConfig(appKey, appSecret, tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     appKey,
		ClientSecret: appSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   dropboxAuthURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
		RedirectURL: "http://" + callbackAddr + "/callback",
		Scopes:      []string{"files.metadata.read", "files.content.write"},
	}
}

// NewClient returns a files client bound to the credential's current access
// token. Call it again after a refresh to pick up the new token.
func NewClient(cred *Credential) files.Client {
	return files.New(dropbox.Config{Token: cred.AccessToken()})
}

// Authorize runs the offline code flow in the browser and returns the
// resulting refresh token. The token is not stored anywhere.
func Authorize(ctx context.Context, appKey, appSecret, tokenURL string) (*oauth2.Token, error) {
	if appKey == "" || appSecret == "" {
		return nil, fmt.Errorf("DROPBOX_APP_KEY and DROPBOX_APP_SECRET are required")
	}

	cfg := oauthConfig(appKey, appSecret, tokenURL)
	authURL := cfg.AuthCodeURL("state-token",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("token_access_type", "offline"))

	fmt.Println("Visit the URL for the auth dialog:")
	fmt.Println()
	fmt.Println(authURL)
	fmt.Println()

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		select {
		case codeCh <- r.URL.Query().Get("code"):
		default:
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprintln(w, "<h2>Authentication complete! Now you can close this window and return to the terminal.</h2>")
	})

	srv := &http.Server{Addr: callbackAddr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Println("Authentication will complete after you log on via browser...")

	select {
	case code := <-codeCh:
		token, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange token: %w", err)
		}

		return token, nil

	case <-time.After(2 * time.Minute):
		return nil, fmt.Errorf("authorization timed out")

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
