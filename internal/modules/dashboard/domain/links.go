package domain

import "net/url"

// BotLink is the deep link that opens the bot with a start command.
func BotLink(botUsername, command string) (string, bool) {
	if botUsername == "" || command == "" {
		return "", false
	}
	return "https://t.me/" + url.PathEscape(botUsername) + "?start=" + url.QueryEscape(command), true
}
