package config

type FrontendConfig interface {
	GetFrontendURL() string
	GetSessionCookieName() string
}

type Frontend struct{}

var _ FrontendConfig = Frontend{}

func (Frontend) GetFrontendURL() string {
	return GetEnv("FRONTEND_URL", "http://localhost:3000")
}

func (Frontend) GetSessionCookieName() string {
	return GetEnv("FRONTEND_TOKEN_COOKIE", "mdbots_session")
}
