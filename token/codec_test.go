package token

import (
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/stretchr/testify/require"

	"github.com/mdcommunity/mdbots-api/internal/config"
)

type sessionConfig struct {
	secret string
	maxAge time.Duration
}

var _ config.SessionConfig = sessionConfig{}

func (c sessionConfig) GetSessionSecret() string        { return c.secret }
func (c sessionConfig) GetSessionMaxAge() time.Duration { return c.maxAge }

func testCodec() *Codec {
	return NewCodec(sessionConfig{secret: "test-secret", maxAge: 6 * 24 * time.Hour})
}

func testClaims() Claims {
	return Claims{
		AccessToken:  "AT",
		TokenType:    "Bearer",
		ExpiresIn:    604800,
		RefreshToken: "RT",
		Scope:        "guilds.join identify email",
		Subject:      "U1",
	}
}

func TestDeriveKey(t *testing.T) {
	t.Run("deterministic 32 byte key", func(t *testing.T) {
		a, err := DeriveKey("secret")
		require.NoError(t, err)
		require.Len(t, a, 32)

		b, err := DeriveKey("secret")
		require.NoError(t, err)
		require.Equal(t, a, b)
	})

	t.Run("different secrets derive different keys", func(t *testing.T) {
		a, err := DeriveKey("secret-a")
		require.NoError(t, err)
		b, err := DeriveKey("secret-b")
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := DeriveKey("")
		require.Error(t, err)
	})
}

func TestCodecRoundTrip(t *testing.T) {
	codec := testCodec()

	raw, err := codec.Encode(testClaims())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	decoded, err := codec.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, testClaims(), decoded)
}

func TestCodecEncodeFailures(t *testing.T) {
	t.Run("missing subject", func(t *testing.T) {
		claims := testClaims()
		claims.Subject = ""
		_, err := testCodec().Encode(claims)
		require.Error(t, err)
	})

	t.Run("missing access token", func(t *testing.T) {
		claims := testClaims()
		claims.AccessToken = ""
		_, err := testCodec().Encode(claims)
		require.Error(t, err)
	})

	t.Run("unset shared secret", func(t *testing.T) {
		codec := NewCodec(sessionConfig{secret: "", maxAge: time.Hour})
		_, err := codec.Encode(testClaims())
		require.Error(t, err)
	})
}

func TestCodecDecodeFailures(t *testing.T) {
	codec := testCodec()

	t.Run("empty token", func(t *testing.T) {
		_, err := codec.Decode("")
		require.Error(t, err)
	})

	t.Run("tampered token", func(t *testing.T) {
		raw, err := codec.Encode(testClaims())
		require.NoError(t, err)

		tampered := []byte(raw)
		tampered[len(tampered)/2] ^= 0x01
		_, err = codec.Decode(string(tampered))
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := codec.Encode(testClaims())
		require.NoError(t, err)

		other := NewCodec(sessionConfig{secret: "other-secret", maxAge: time.Hour})
		_, err = other.Decode(raw)
		require.Error(t, err)
	})

	t.Run("expired token beyond leeway", func(t *testing.T) {
		NowTimeFunc = func() time.Time { return time.Now().Add(-7 * 24 * time.Hour) }
		raw, err := codec.Encode(testClaims())
		NowTimeFunc = time.Now
		require.NoError(t, err)

		_, err = codec.Decode(raw)
		require.Error(t, err)
	})

	t.Run("expiry within clock tolerance still accepted", func(t *testing.T) {
		// Expired 10 seconds ago, inside the 15 second leeway.
		short := NewCodec(sessionConfig{secret: "test-secret", maxAge: time.Minute})
		NowTimeFunc = func() time.Time { return time.Now().Add(-70 * time.Second) }
		raw, err := short.Encode(testClaims())
		NowTimeFunc = time.Now
		require.NoError(t, err)

		_, err = codec.Decode(raw)
		require.NoError(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		raw := encryptWithAudience(t, "some.other.api")
		_, err := codec.Decode(raw)
		require.Error(t, err)
	})
}

// encryptWithAudience builds a token with the right key but a foreign
// audience claim.
func encryptWithAudience(t *testing.T, aud string) string {
	t.Helper()

	key, err := DeriveKey("test-secret")
	require.NoError(t, err)

	enc, err := jose.NewEncrypter(
		jose.A256GCM,
		jose.Recipient{Algorithm: jose.A256KW, Key: key},
		(&jose.EncrypterOptions{}).WithType("JWT"),
	)
	require.NoError(t, err)

	now := time.Now()
	registered := jwt.Claims{
		Issuer:   issuer,
		Audience: jwt.Audience{aud},
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(time.Hour)),
	}
	raw, err := jwt.Encrypted(enc).Claims(registered).Claims(testClaims()).Serialize()
	require.NoError(t, err)
	return raw
}
