package auth

import (
	"dropdate/internal/config"
	"sync"
)

// Credential holds the Dropbox access token for one run. The access token is
// replaced in place after a refresh and is never written back to config.
type Credential struct {
	mu          sync.RWMutex
	accessToken string

	RefreshToken string
	AppKey       string
	AppSecret    string
}

func NewCredential(cfg config.DropboxConfig) *Credential {
	return &Credential{
		accessToken:  cfg.AccessToken,
		RefreshToken: cfg.RefreshToken,
		AppKey:       cfg.AppKey,
		AppSecret:    cfg.AppSecret,
	}
}

func (c *Credential) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *Credential) Update(accessToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
}

func (c *Credential) CanRefresh() bool {
	return c.RefreshToken != "" && c.AppKey != "" && c.AppSecret != ""
}
