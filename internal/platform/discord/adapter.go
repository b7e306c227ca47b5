// Package discord adapts the Discord gateway to the bot's narrow platform
// interfaces. Nothing outside this package depends on discordgo types.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/mcoot/connections-leaderboard/internal/delivery"
	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/services/broadcast"
)

// NewSession creates a Discord session with the intents the bot needs to
// read puzzle shares. The caller owns Open/Close.
func NewSession(token string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent
	return session, nil
}

// Platform exposes Discord as the delivery Sender and channel resolver.
// Destinations are channel ids.
type Platform struct {
	session *discordgo.Session
	logger  *slog.Logger
}

// NewPlatform wraps an open session
func NewPlatform(session *discordgo.Session, logger *slog.Logger) *Platform {
	return &Platform{
		session: session,
		logger:  logger,
	}
}

var (
	_ delivery.Sender           = (*Platform)(nil)
	_ broadcast.ChannelResolver = (*Platform)(nil)
)

// SendText posts text to a channel, translating Discord's rate-limit error
// into the gate's throttle signal
func (p *Platform) SendText(ctx context.Context, destination string, text string) error {
	_, err := p.session.ChannelMessageSend(destination, text, discordgo.WithContext(ctx))
	if err == nil {
		return nil
	}

	var rateLimited *discordgo.RateLimitError
	if errors.As(err, &rateLimited) {
		return &delivery.ThrottledError{RetryAfter: rateLimited.RetryAfter}
	}
	return fmt.Errorf("sending message: %w", err)
}

// ResolveChannel finds a guild's text channel by name
func (p *Platform) ResolveChannel(ctx context.Context, community model.CommunityID, channelName string) (string, error) {
	guild, err := p.session.State.Guild(string(community))
	if err != nil {
		return "", fmt.Errorf("looking up guild %s: %w", community, err)
	}

	for _, channel := range guild.Channels {
		if channel.Type == discordgo.ChannelTypeGuildText && channel.Name == channelName {
			return channel.ID, nil
		}
	}
	return "", fmt.Errorf("guild %s: %w", community, model.ErrChannelNotFound)
}

// channelName resolves a channel id to its name via session state
func (p *Platform) channelName(channelID string) string {
	channel, err := p.session.State.Channel(channelID)
	if err != nil {
		return ""
	}
	return channel.Name
}
