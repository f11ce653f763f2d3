package server

const (
	RouteAuthLogin    = "/auth/login"
	RouteAuthCallback = "/auth/callback"
	RouteAuthLogout   = "/auth/logout"
	RouteAuthVerify   = "/auth/verify"

	RouteBots  = "/bots"
	RouteBotID = "/bots/{id}"

	RouteMeProfile = "/me/profile"
	RouteMeBots    = "/me/bots"
)
