package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mdcommunity/mdbots-api/bots"
	"github.com/mdcommunity/mdbots-api/internal/httperror"
)

// botListResponse mirrors the listing envelope the front end pages with.
type botListResponse struct {
	Total int        `json:"total"`
	Data  []bots.Bot `json:"data"`
	Skip  int        `json:"skip"`
	Take  int        `json:"take"`
}

func (s *Server) ListBotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		take := queryInt(r, "limit", 10)
		skip := queryInt(r, "offset", 0)

		total, err := s.deps.Bots.Count(r.Context(), bots.ListOptions{})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		data, err := s.deps.Bots.List(r.Context(), bots.ListOptions{Skip: skip, Take: take})
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, botListResponse{Total: total, Data: data, Skip: skip, Take: take})
	}
}

func (s *Server) GetBotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bot, err := s.deps.Bots.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			if errors.Is(err, bots.ErrNotFound) {
				s.respondError(w, r, httperror.BadRequest("the bot was not found"))
				return
			}
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, bot)
	}
}

func (s *Server) CreateBotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bots.CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, httperror.BadRequest("body not provided"))
			return
		}
		if err := req.Validate(); err != nil {
			s.respondError(w, r, err)
			return
		}

		if _, err := s.deps.Bots.Get(r.Context(), req.BotID); err == nil {
			s.respondError(w, r, httperror.Conflict(fmt.Sprintf("the bot %s already exists", req.BotID)))
			return
		} else if !errors.Is(err, bots.ErrNotFound) {
			s.respondError(w, r, err)
			return
		}

		// Username and asset URLs come from the provider, never the payload.
		profile, err := s.deps.BotDir.GetBot(r.Context(), req.BotID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		bot := &bots.Bot{
			BotID:            req.BotID,
			OwnerID:          req.OwnerID,
			Username:         profile.Username,
			AvatarURL:        profile.AvatarURL,
			BannerURL:        profile.BannerURL,
			ShortDescription: req.ShortDescription,
			Description:      req.Description,
			IsSlashCommands:  req.IsSlashCommands,
			IsPending:        true,
		}
		if err := s.deps.Bots.Create(r.Context(), bot); err != nil {
			if errors.Is(err, bots.ErrAlreadyExists) {
				s.respondError(w, r, httperror.Conflict(fmt.Sprintf("the bot %s already exists", req.BotID)))
				return
			}
			s.respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, bot)
	}
}

func (s *Server) UpdateBotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bot, ok := s.ownedBot(w, r, "you are not authorized to update this bot")
		if !ok {
			return
		}

		var req bots.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, r, httperror.BadRequest("body not provided"))
			return
		}
		if err := req.Validate(); err != nil {
			s.respondError(w, r, err)
			return
		}

		updated, err := s.deps.Bots.Update(r.Context(), bot.BotID, req)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, updated)
	}
}

func (s *Server) DeleteBotHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bot, ok := s.ownedBot(w, r, "you are not authorized to delete this bot")
		if !ok {
			return
		}

		deleted, err := s.deps.Bots.Delete(r.Context(), bot.BotID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, deleted)
	}
}

// ownedBot loads the target record and enforces the ownership invariant:
// only the record's owner may mutate it, regardless of payload validity.
func (s *Server) ownedBot(w http.ResponseWriter, r *http.Request, denial string) (*bots.Bot, bool) {
	bot, err := s.deps.Bots.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, bots.ErrNotFound) {
			s.respondError(w, r, httperror.BadRequest("the bot was not found"))
			return nil, false
		}
		s.respondError(w, r, err)
		return nil, false
	}

	session, _ := SessionFromContext(r.Context())
	if bot.OwnerID != session.Subject {
		s.respondError(w, r, httperror.Unauthorized(denial))
		return nil, false
	}
	return bot, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
