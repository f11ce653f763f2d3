package server

import (
	"context"
	"net/http"

	"github.com/mdcommunity/mdbots-api/internal/httperror"
	"github.com/mdcommunity/mdbots-api/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the decoded session claims
const ContextKeySession ContextKey = "session"

// RequireSession is the gate in front of authenticated routes: it pulls
// the session cookie, decodes it, and attaches the claims to the request
// context. It rejects or annotates, nothing else.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Cookie") == "" {
				s.respondError(w, r, httperror.Unauthorized("Cookie not found"))
				return
			}

			cookie, err := r.Cookie(s.config.GetSessionCookieName())
			if err != nil || cookie.Value == "" {
				s.respondError(w, r, httperror.Unauthorized("Token not found"))
				return
			}

			claims, err := s.deps.Codec.Decode(cookie.Value)
			if err != nil {
				s.respondError(w, r, httperror.Unauthorized(""))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionFromContext returns the claims RequireSession attached.
func SessionFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeySession).(token.Claims)
	return claims, ok
}
