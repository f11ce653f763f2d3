package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/mdcommunity/mdbots-api/internal/httperror"
	"github.com/mdcommunity/mdbots-api/token"
)

// LoginHandler redirects the browser to the provider's authorize URL.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.deps.Provider.AuthCodeURL(), http.StatusFound)
	}
}

// CallbackHandler finishes the OAuth flow: code exchange, profile fetch,
// session issuance, cookie set. A browser navigating through an OAuth
// redirect cannot render a JSON error, so every failure collapses into the
// same front-end redirect with the message in an error query parameter.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callbackURL := s.frontendCallbackURL()
		fail := func(message string) {
			http.Redirect(w, r, callbackURL+"?error="+url.QueryEscape(message), http.StatusFound)
		}

		if provErr := r.URL.Query().Get("error"); provErr != "" {
			fail(provErr)
			return
		}

		tokenRes, err := s.deps.Provider.Exchange(r.Context(), r.URL.Query().Get("code"))
		if err != nil || tokenRes == nil {
			fail(failureMessage(err, "could not request token"))
			return
		}

		profile, err := s.deps.Provider.FetchProfile(r.Context(), tokenRes.AccessToken)
		if err != nil || profile == nil {
			fail(failureMessage(err, "could not fetch authenticated user"))
			return
		}

		session, err := s.deps.Codec.Encode(token.Claims{
			AccessToken:  tokenRes.AccessToken,
			TokenType:    tokenRes.TokenType,
			ExpiresIn:    tokenRes.ExpiresIn,
			RefreshToken: tokenRes.RefreshToken,
			Scope:        tokenRes.Scope,
			Subject:      profile.ID,
		})
		if err != nil {
			fail("could not issue session token")
			return
		}

		http.SetCookie(w, s.sessionCookie(session, int(s.config.GetSessionMaxAge().Seconds())))
		http.Redirect(w, r, callbackURL, http.StatusFound)
	}
}

// LogoutHandler clears the session cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, s.sessionCookie("", -1))
		respondJSON(w, http.StatusOK, nil)
	}
}

// VerifyHandler is behind RequireSession, so reaching it means the
// session is valid.
func (s *Server) VerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, nil)
	}
}

func (s *Server) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.env == "production",
		SameSite: http.SameSiteStrictMode,
	}
}

// failureMessage extracts a user-presentable message from a typed error,
// falling back to the step's default.
func failureMessage(err error, fallback string) string {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) && httpErr.StatusText != "" {
		return httpErr.StatusText
	}
	return fallback
}
