package server

import "net/http"

func (s *Server) initRoutes() {
	// AUTH
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.CallbackHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerify, ChainMiddleware(s.VerifyHandler(), s.APIMiddleware(s.RequireSession())...))

	// BOTS
	s.RegisterRouteHandler("GET "+RouteBots, ChainMiddleware(s.ListBotsHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteBotID, ChainMiddleware(s.GetBotHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteBots, ChainMiddleware(s.CreateBotHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("PUT "+RouteBotID, ChainMiddleware(s.UpdateBotHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("DELETE "+RouteBotID, ChainMiddleware(s.DeleteBotHandler(), s.APIMiddleware(s.RequireSession())...))

	// ME
	s.RegisterRouteHandler("GET "+RouteMeProfile, ChainMiddleware(s.MeProfileHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteMeBots, ChainMiddleware(s.MeBotsHandler(), s.APIMiddleware(s.RequireSession())...))

	// Everything else gets the JSON 404 envelope.
	s.RegisterRouteHandler("/", ChainMiddleware(s.NotFoundHandler(), s.APIMiddleware()...))
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondStatus(w, http.StatusNotFound)
	}
}
