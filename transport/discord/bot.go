package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"tzbot/config"
	"tzbot/infras/otel"
	"tzbot/internal/domains/zone/model"
	"tzbot/internal/domains/zone/model/dto"
	"tzbot/internal/domains/zone/service"
	"tzbot/shared/constant"
	"tzbot/shared/logger"
)

const (
	UsageReply           = "usage: /tzadd person timezone"
	UnknownTimezoneReply = "Unknown timezone, full list comming soon"
	SaveFailedWarning    = "Warning: saving failed, this entry may be lost on restart"
	PersonTooLongReply   = "That name is too long, keep it under 100 characters"
	RejectedReply        = "Could not add that entry, check the name and timezone"

	addArgs = 3
)

// Messenger is the part of *discordgo.Session the bot sends through.
type Messenger interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Bot struct {
	session *discordgo.Session
	service service.Zone
	config  *config.Config
	otel    otel.Otel
}

func New(config *config.Config, session *discordgo.Session, service service.Zone, otel otel.Otel) *Bot {
	return &Bot{
		session: session,
		service: service,
		config:  config,
		otel:    otel,
	}
}

// Run connects to the gateway and dispatches messages until ctx is done.
// Without a session it returns immediately.
func (b *Bot) Run(ctx context.Context) error {
	if b.session == nil {
		return nil
	}

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		selfID := ""
		if s.State != nil && s.State.User != nil {
			selfID = s.State.User.ID
		}

		reqCtx, _ := logger.WithRequestID(context.WithoutCancel(ctx))

		b.Handle(reqCtx, s, selfID, m.Message)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	<-ctx.Done()

	log.Info().Msg("Closing discord session")

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}

	return nil
}

func (b *Bot) onReady(_ *discordgo.Session, ready *discordgo.Ready) {
	log.Info().Msgf("Connected as %s", ready.User.Username)
}

// Handle routes one incoming message. selfID is the bot's own user id.
func (b *Bot) Handle(ctx context.Context, out Messenger, selfID string, msg *discordgo.Message) {
	if msg == nil || msg.Author == nil || msg.Author.ID == selfID || msg.GuildID == "" {
		return
	}

	guildID, err := model.ParseGuildID(msg.GuildID)
	if err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("ignoring message with malformed guild id")

		return
	}

	switch {
	case strings.HasPrefix(msg.Content, b.config.Discord.CommandPrefix):
		b.add(ctx, out, guildID, msg)
	case !msg.Author.Bot && mentionsTimezones(msg.Content):
		b.report(ctx, out, guildID, msg)
	}
}

func (b *Bot) add(ctx context.Context, out Messenger, guildID model.GuildID, msg *discordgo.Message) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelDiscordScopeName, constant.OtelDiscordScopeName+".Add")
	defer scope.End()

	args := strings.Fields(msg.Content)
	if len(args) != addArgs {
		reply(ctx, out, msg, UsageReply)

		return
	}

	req := dto.RegisterRequest{GuildID: guildID, Person: args[1], Timezone: args[2]}

	err := b.service.Register(ctx, req)

	switch {
	case err == nil:
		send(ctx, out, msg.ChannelID, fmt.Sprintf("Added %s to %s", req.Person, req.Timezone))
	case errors.Is(err, model.ErrPersistenceWriteFailed):
		scope.TraceError(err)
		send(ctx, out, msg.ChannelID, fmt.Sprintf("Added %s to %s\n%s", req.Person, req.Timezone, SaveFailedWarning))
	case errors.Is(err, model.ErrUnknownTimezone):
		reply(ctx, out, msg, UnknownTimezoneReply)
	case errors.Is(err, model.ErrPersonTooLong):
		reply(ctx, out, msg, PersonTooLongReply)
	default:
		scope.TraceError(err)
		logger.Ctx(ctx).Warn().Err(err).Msg("rejected tzadd")
		reply(ctx, out, msg, RejectedReply)
	}
}

func (b *Bot) report(ctx context.Context, out Messenger, guildID model.GuildID, msg *discordgo.Message) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelDiscordScopeName, constant.OtelDiscordScopeName+".Report")
	defer scope.End()

	res, err := b.service.Report(ctx, guildID)
	if err != nil {
		scope.TraceError(err)
	}

	send(ctx, out, msg.ChannelID, res.Report)
}

func mentionsTimezones(content string) bool {
	lower := strings.ToLower(content)

	return strings.Contains(lower, "time") && strings.Contains(lower, "zone")
}

func send(ctx context.Context, out Messenger, channelID, content string) {
	if _, err := out.ChannelMessageSend(channelID, content); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str(constant.LogFieldChannelID, channelID).Msg("Error sending message")
	}
}

func reply(ctx context.Context, out Messenger, msg *discordgo.Message, content string) {
	if _, err := out.ChannelMessageSendReply(msg.ChannelID, content, msg.Reference()); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str(constant.LogFieldChannelID, msg.ChannelID).Msg("Error sending reply")
	}
}
