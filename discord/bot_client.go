package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mdcommunity/mdbots-api/internal/config"
	"github.com/mdcommunity/mdbots-api/internal/httperror"
)

// BotProfile is a bot account's public profile with CDN asset URLs.
type BotProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	BannerURL string `json:"banner_url"`
}

// BotClient fetches public bot-account profiles. Unlike Client it
// authenticates with the listing site's own bot token, not a user token.
type BotClient struct {
	apiBaseURL string
	botToken   string
	httpClient *http.Client
}

func NewBotClient(cfg config.DiscordConfig) *BotClient {
	return &BotClient{
		apiBaseURL: defaultAPIBaseURL + "/v10",
		botToken:   cfg.GetDiscordBotToken(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetBot fetches a bot account's profile. Accounts the provider does not
// flag as bots are rejected.
func (c *BotClient) GetBot(ctx context.Context, id string) (*BotProfile, error) {
	if id == "" {
		return nil, httperror.BadRequest("bot id not provided")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/users/"+id, nil)
	if err != nil {
		return nil, httperror.BadRequest("could not fetch bot profile")
	}
	req.Header.Set("Authorization", "Bot "+c.botToken)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, httperror.BadRequest("could not fetch bot profile")
	}
	defer res.Body.Close()

	var user struct {
		ID            string `json:"id"`
		Username      string `json:"username"`
		Discriminator string `json:"discriminator"`
		Avatar        string `json:"avatar"`
		Banner        string `json:"banner"`
		Bot           bool   `json:"bot"`
	}
	if res.StatusCode != http.StatusOK || json.NewDecoder(res.Body).Decode(&user) != nil || user.ID == "" {
		return nil, httperror.BadRequest("could not fetch bot profile")
	}
	if !user.Bot {
		return nil, httperror.BadRequest("this id does not belong to a bot")
	}

	return &BotProfile{
		ID:        user.ID,
		Username:  fmt.Sprintf("%s#%s", user.Username, user.Discriminator),
		AvatarURL: avatarURL(user.ID, user.Avatar),
		BannerURL: bannerURL(user.ID, user.Banner),
	}, nil
}
