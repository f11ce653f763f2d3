package config

// DiscordConfig carries the credentials for the identity provider: the
// OAuth2 application used for user login and the bot account used for
// fetching public bot profiles.
type DiscordConfig interface {
	GetDiscordClientID() string
	GetDiscordClientSecret() string
	GetDiscordRedirectURL() string
	GetDiscordBotToken() string
	GetErrorWebhookURL() string
}

type Discord struct{}

var _ DiscordConfig = Discord{}

func (Discord) GetDiscordClientID() string {
	return GetEnv("DIS_ID", "")
}

func (Discord) GetDiscordClientSecret() string {
	return GetEnv("DIS_SECRET", "")
}

func (Discord) GetDiscordRedirectURL() string {
	return GetEnv("DIS_REDIRECT", "")
}

func (Discord) GetDiscordBotToken() string {
	return GetEnv("DIS_BOT_TOKEN", "")
}

func (Discord) GetErrorWebhookURL() string {
	return GetEnv("DIS_WEBHOOK_ERROR", "")
}
