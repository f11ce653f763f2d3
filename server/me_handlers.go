package server

import (
	"net/http"

	"github.com/mdcommunity/mdbots-api/bots"
)

// MeProfileHandler proxies the authenticated user's provider profile
// using the access token embedded in the session.
func (s *Server) MeProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFromContext(r.Context())

		profile, err := s.deps.Provider.FetchProfile(r.Context(), session.AccessToken)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

type meBotsResponse struct {
	Total int        `json:"total"`
	Data  []bots.Bot `json:"data"`
}

// MeBotsHandler lists the bots owned by the authenticated user.
func (s *Server) MeBotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := SessionFromContext(r.Context())

		data, err := s.deps.Bots.ListByOwner(r.Context(), session.Subject)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		total, err := s.deps.Bots.CountByOwner(r.Context(), session.Subject)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, meBotsResponse{Total: total, Data: data})
	}
}
