// Package discord is the outbound client for the identity provider: the
// OAuth2 login flow for users and a separately-credentialed bot-token
// client for public bot profiles. Provider-side failures (network errors,
// non-2xx responses, malformed bodies) are normalized to BadRequest with a
// readable message; the provider's own error detail never reaches callers.
package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/mdcommunity/mdbots-api/internal/config"
	"github.com/mdcommunity/mdbots-api/internal/httperror"
)

const (
	defaultAPIBaseURL = "https://discord.com/api"
	authorizeURL      = "https://discord.com/oauth2/authorize"
)

var loginScopes = []string{"guilds.join", "identify", "email"}

// TokenResponse is the provider's token endpoint response (RFC 6749). It
// is never persisted raw; the auth handler embeds it into a session token.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

// UserProfile is the authenticated user's profile with the avatar hash
// already mapped to a full CDN URL.
type UserProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

// Client performs the user-token side of the provider interaction. It is
// configuration-bound and immutable: build one at startup and share it.
type Client struct {
	oauth      *oauth2.Config
	apiBaseURL string
}

func NewClient(cfg config.DiscordConfig) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.GetDiscordClientID(),
			ClientSecret: cfg.GetDiscordClientSecret(),
			RedirectURL:  cfg.GetDiscordRedirectURL(),
			Scopes:       loginScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   authorizeURL,
				TokenURL:  defaultAPIBaseURL + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBaseURL: defaultAPIBaseURL,
	}
}

// AuthCodeURL builds the provider's authorize URL for the login redirect.
func (c *Client) AuthCodeURL() string {
	q := url.Values{}
	q.Set("scope", strings.Join(c.oauth.Scopes, " "))
	q.Set("redirect_uri", c.oauth.RedirectURL)
	q.Set("client_id", c.oauth.ClientID)
	q.Set("response_type", "code")
	return c.oauth.Endpoint.AuthURL + "?" + q.Encode()
}

// Exchange trades an authorization code for a token response.
func (c *Client) Exchange(ctx context.Context, code string) (*TokenResponse, error) {
	if code == "" {
		return nil, httperror.BadRequest("code not provided")
	}

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil || tok.AccessToken == "" {
		return nil, httperror.BadRequest("could not request token")
	}
	return tokenResponseFrom(tok), nil
}

// Refresh trades a refresh token for a fresh token response.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, httperror.BadRequest("refresh token not provided")
	}

	tok, err := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil || tok.AccessToken == "" {
		return nil, httperror.BadRequest("could not refresh token")
	}
	return tokenResponseFrom(tok), nil
}

// FetchProfile fetches the authenticated user's profile with a bearer
// token and maps the avatar hash to a CDN URL.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*UserProfile, error) {
	if accessToken == "" {
		return nil, httperror.BadRequest("token not provided")
	}

	httpClient := c.oauth.Client(ctx, &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	res, err := httpClient.Get(c.apiBaseURL + "/users/@me")
	if err != nil {
		return nil, httperror.BadRequest("could not fetch authenticated user")
	}
	defer res.Body.Close()

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
		Email    string `json:"email"`
	}
	if res.StatusCode != http.StatusOK || json.NewDecoder(res.Body).Decode(&user) != nil || user.ID == "" {
		return nil, httperror.BadRequest("could not fetch authenticated user")
	}

	return &UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: avatarURL(user.ID, user.Avatar),
		Email:     user.Email,
	}, nil
}

func tokenResponseFrom(tok *oauth2.Token) *TokenResponse {
	tr := &TokenResponse{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		tr.Scope = scope
	}
	// The oauth2 package keeps expires_in only as an absolute expiry.
	if !tok.Expiry.IsZero() {
		tr.ExpiresIn = int64(time.Until(tok.Expiry).Round(time.Second).Seconds())
	}
	if v, ok := tok.Extra("expires_in").(float64); ok {
		tr.ExpiresIn = int64(v)
	}
	return tr
}
