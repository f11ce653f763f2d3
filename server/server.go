// Package server wires the HTTP surface: auth flow, bot CRUD, and the
// me endpoints, with the session gate in front of everything that needs
// an authenticated identity.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/mdcommunity/mdbots-api/bots"
	"github.com/mdcommunity/mdbots-api/discord"
	"github.com/mdcommunity/mdbots-api/internal/config"
	"github.com/mdcommunity/mdbots-api/token"
)

// TokenCodec issues and verifies session tokens. Satisfied by
// *token.Codec; stubbed in tests.
type TokenCodec interface {
	Encode(claims token.Claims) (string, error)
	Decode(raw string) (token.Claims, error)
}

// ProviderClient is the user-token side of the identity provider.
// Satisfied by *discord.Client.
type ProviderClient interface {
	AuthCodeURL() string
	Exchange(ctx context.Context, code string) (*discord.TokenResponse, error)
	FetchProfile(ctx context.Context, accessToken string) (*discord.UserProfile, error)
}

// BotDirectory resolves bot-account profiles. Satisfied by
// *discord.BotClient.
type BotDirectory interface {
	GetBot(ctx context.Context, id string) (*discord.BotProfile, error)
}

// ErrorReporter receives errors the API cannot express to the client.
// Satisfied by *monitor.Monitor.
type ErrorReporter interface {
	Error(ctx context.Context, err error) bool
}

// Dependencies are the collaborators the server orchestrates. All of them
// are immutable configuration-bound objects built once at startup.
type Dependencies struct {
	Codec    TokenCodec
	Provider ProviderClient
	BotDir   BotDirectory
	Bots     bots.Repo
	Monitor  ErrorReporter
}

type Server struct {
	env    string
	mux    *http.ServeMux
	routes []string
	config config.Config
	deps   Dependencies
}

func New(cfg config.Config, deps Dependencies) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		deps:   deps,
		env:    cfg.GetEnv(),
	}
	s.initRoutes()
	s.logRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Printf("[%-7s] %s\n", parts[0], parts[1])
		} else {
			log.Printf("[%-7s] %s\n", "", parts[0])
		}
	}
}

func (s *Server) frontendCallbackURL() string {
	return fmt.Sprintf("%s/auth/callback", strings.TrimSuffix(s.config.GetFrontendURL(), "/"))
}
