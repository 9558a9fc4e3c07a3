package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"tzbot/config"
)

var ErrMissingToken = errors.New("discord token is not configured")

const intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// New creates a gateway session. It does not connect; the caller opens it.
func New(config *config.Config) (*discordgo.Session, error) {
	if !config.Discord.Enable {
		log.Warn().Msg("Discord gateway disabled, only the HTTP surface will run")

		return nil, nil
	}

	if config.Discord.Token == "" {
		return nil, ErrMissingToken
	}

	session, err := discordgo.New("Bot " + config.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = intents

	return session, nil
}
