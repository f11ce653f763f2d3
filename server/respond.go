package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mdcommunity/mdbots-api/internal/httperror"
)

func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("could not encode response body")
	}
}

// respondStatus writes the {statusCode, statusText} envelope for a bare
// status code.
func respondStatus(w http.ResponseWriter, statusCode int) {
	respondJSON(w, statusCode, httperror.New(statusCode, ""))
}

// respondError funnels every handler failure through the typed-error
// envelope. Untyped errors surface as a plain 500 and are reported to the
// monitor, never to the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := httperror.From(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		if s.deps.Monitor != nil {
			s.deps.Monitor.Error(r.Context(), err)
		}
	}
	respondJSON(w, httpErr.StatusCode, httpErr)
}
