package discord

import (
	"fmt"
	"strings"
)

const (
	cdnBaseURL       = "https://cdn.discordapp.com"
	defaultAvatarURL = cdnBaseURL + "/embed/avatars/0.png?size=4096"
)

// imageFormat follows the provider's CDN rule: animated assets have an
// "a_" hash prefix and are served as gif, everything else as png.
func imageFormat(hash string) string {
	if strings.HasPrefix(hash, "a_") {
		return "gif"
	}
	return "png"
}

func avatarURL(userID, hash string) string {
	if hash == "" {
		return defaultAvatarURL
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s?size=4096", cdnBaseURL, userID, hash, imageFormat(hash))
}

func bannerURL(userID, hash string) string {
	if hash == "" {
		return defaultAvatarURL
	}
	return fmt.Sprintf("%s/banners/%s/%s.%s?size=4096", cdnBaseURL, userID, hash, imageFormat(hash))
}
