// Package token implements the session token codec. A session token is an
// encrypted JWT (A256KW key wrap, A256GCM content encryption) whose
// plaintext claims embed the user's Discord OAuth tokens, so the cookie is
// opaque to the client and to anyone watching the wire.
package token

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"golang.org/x/crypto/hkdf"

	"github.com/mdcommunity/mdbots-api/internal/config"
)

const (
	issuer   = "MDCommunity"
	audience = "api.mdbots.com.br"

	// keyInfo is the fixed HKDF info string; changing it invalidates
	// every session in the wild.
	keyInfo = "session token encryption key"
	keySize = 32

	clockTolerance = 15 * time.Second
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Claims is the plaintext embedded in a session token: the provider's
// token response plus the Discord user id as the subject.
type Claims struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
	Subject      string `json:"sub"`
}

// Codec encrypts and decrypts session tokens with a key derived from the
// configured shared secret. It holds no mutable state and is safe for
// concurrent use.
type Codec struct {
	cfg config.SessionConfig
}

func NewCodec(cfg config.SessionConfig) *Codec {
	return &Codec{cfg: cfg}
}

// DeriveKey derives the fixed-length content key from a shared secret
// using HKDF-SHA256 with an empty salt.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is not set")
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("hkdf.New: %w", err)
	}
	return key, nil
}

// Encode builds an encrypted session token from the claims. The token is
// issued now, expires after the configured session lifetime, and carries
// the fixed issuer and audience. A token is never issued without a subject
// and an access token.
func (c *Codec) Encode(claims Claims) (string, error) {
	if claims.Subject == "" || claims.AccessToken == "" {
		return "", fmt.Errorf("claims require a subject and an access token")
	}

	key, err := DeriveKey(c.cfg.GetSessionSecret())
	if err != nil {
		return "", fmt.Errorf("token.DeriveKey: %w", err)
	}

	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.A256KW, Key: key},
		(&jose.EncrypterOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("jose.NewEncrypter: %w", err)
	}

	now := NowTimeFunc()
	registered := jwt.Claims{
		Issuer:   issuer,
		Audience: jwt.Audience{audience},
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(c.cfg.GetSessionMaxAge())),
	}

	raw, err := jwt.Encrypted(enc).Claims(registered).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("jwt.Encrypted: %w", err)
	}
	return raw, nil
}

// Decode decrypts and verifies a session token, checking the audience and
// allowing a small clock-skew tolerance on the time claims. Any
// decryption, expiry, or audience failure comes back as an error; callers
// must treat every error as "no session".
func (c *Codec) Decode(raw string) (Claims, error) {
	if raw == "" {
		return Claims{}, fmt.Errorf("token is not set")
	}

	key, err := DeriveKey(c.cfg.GetSessionSecret())
	if err != nil {
		return Claims{}, fmt.Errorf("token.DeriveKey: %w", err)
	}

	tok, err := jwt.ParseEncrypted(raw, []jose.KeyAlgorithm{jose.A256KW}, []jose.ContentEncryption{jose.A256GCM})
	if err != nil {
		return Claims{}, fmt.Errorf("jwt.ParseEncrypted: %w", err)
	}

	var registered jwt.Claims
	var claims Claims
	if err := tok.Claims(key, &registered, &claims); err != nil {
		return Claims{}, fmt.Errorf("token decryption failed: %w", err)
	}

	expected := jwt.Expected{
		AnyAudience: jwt.Audience{audience},
		Time:        NowTimeFunc(),
	}
	if err := registered.ValidateWithLeeway(expected, clockTolerance); err != nil {
		return Claims{}, fmt.Errorf("token validation failed: %w", err)
	}
	return claims, nil
}
