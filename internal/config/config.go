package config

type Config interface {
	EnvConfig
	CorsConfig
	DiscordConfig
	SessionConfig
	FrontendConfig
	DatabaseConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Discord
	Session
	Frontend
	Database
}

func New() Config {
	return mainConfig{}
}
