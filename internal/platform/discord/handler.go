package discord

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mcoot/connections-leaderboard/internal/delivery"
	"github.com/mcoot/connections-leaderboard/internal/model"
	"github.com/mcoot/connections-leaderboard/internal/services/commands"
)

// Handler bridges Discord message events to the commands controller.
// Replies and acknowledgments go out through the delivery gate.
type Handler struct {
	platform   *Platform
	controller *commands.Controller
	gate       *delivery.Gate
	prefix     string
	logger     *slog.Logger

	// ctx bounds work started by gateway events; cancelled at shutdown
	ctx context.Context
}

// NewHandler creates the message handler
func NewHandler(platform *Platform, controller *commands.Controller, gate *delivery.Gate, prefix string, logger *slog.Logger) *Handler {
	return &Handler{
		platform:   platform,
		controller: controller,
		gate:       gate,
		prefix:     prefix,
		logger:     logger,
	}
}

// Register attaches the handler to the session. ctx cancellation stops
// in-flight reply delivery at shutdown.
func (h *Handler) Register(ctx context.Context, session *discordgo.Session) {
	h.ctx = ctx
	session.AddHandler(h.onMessageCreate)
}

// onMessageCreate is the hard isolation boundary for the inbound path: no
// error or panic escapes to the gateway loop
func (h *Handler) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("panic handling message",
				slog.String("channel", m.ChannelID),
				slog.Any("panic", r),
			)
		}
	}()

	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	if reply, handled := h.dispatchCommand(s, m); handled {
		h.reply(m.ChannelID, reply)
		return
	}

	inbound := model.InboundMessage{
		CommunityID:       model.CommunityID(m.GuildID),
		ChannelName:       h.platform.channelName(m.ChannelID),
		AuthorID:          model.UserID(m.Author.ID),
		AuthorDisplayName: displayName(m),
		Text:              m.Content,
	}

	reply, err := h.controller.HandleMessage(h.ctx, inbound)
	if err != nil {
		h.logger.Error("handling submission failed",
			slog.String("community", m.GuildID),
			slog.String("error", err.Error()),
		)
		return
	}
	h.reply(m.ChannelID, reply)
}

// dispatchCommand runs prefix commands; handled is false for ordinary chat
func (h *Handler) dispatchCommand(s *discordgo.Session, m *discordgo.MessageCreate) (reply string, handled bool) {
	if !strings.HasPrefix(m.Content, h.prefix) {
		return "", false
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, h.prefix))
	if len(fields) == 0 {
		return "", false
	}
	community := model.CommunityID(m.GuildID)

	var err error
	switch fields[0] {
	case "leaderboard":
		arg := "today"
		if len(fields) > 1 {
			arg = fields[1]
		}
		reply, err = h.controller.Daily(h.ctx, community, arg)
	case "weekly_leaderboard":
		reply, err = h.controller.Weekly(h.ctx, community)
	case "clear_leaderboard":
		if !h.canManageServer(s, m) {
			return "You need the Manage Server permission to clear the leaderboard.", true
		}
		reply, err = h.controller.Clear(h.ctx, community)
	case "show_leaderboard_file":
		reply = "Leaderboard record: `" + h.controller.RecordKey(community) + "`"
	default:
		// Unknown prefix commands belong to other bots
		return "", false
	}

	if err != nil {
		h.logger.Error("command failed",
			slog.String("command", fields[0]),
			slog.String("community", m.GuildID),
			slog.String("error", err.Error()),
		)
		return "Something went wrong running that command.", true
	}
	return reply, true
}

func (h *Handler) canManageServer(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.State.MessagePermissions(m.Message)
	if err != nil {
		h.logger.Warn("permission lookup failed",
			slog.String("channel", m.ChannelID),
			slog.String("error", err.Error()),
		)
		return false
	}
	return perms&discordgo.PermissionManageServer != 0
}

// reply sends through the gate; delivery failure is already logged there
func (h *Handler) reply(channelID, text string) {
	if text == "" {
		return
	}
	h.gate.Send(h.ctx, channelID, text)
}

func displayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}
