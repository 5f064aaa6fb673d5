package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"anilistbot/internal/anilist"
	"anilistbot/internal/auth"
	"anilistbot/internal/format"
	"anilistbot/internal/metrics"
	"anilistbot/internal/watchlist"
	"anilistbot/pkg/models"
)

// Session is the part of *discordgo.Session the bot talks to.
type Session interface {
	InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(i *discordgo.Interaction, e *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	HeartbeatLatency() time.Duration
}

// AniList is the lookup surface of *anilist.Client.
type AniList interface {
	SearchAnime(ctx context.Context, q anilist.SearchQuery) (*anilist.AnimeResult, error)
	GetAnime(ctx context.Context, id int) (*models.Anime, error)
	GetNextAiring(ctx context.Context, id int) (*models.AiringInfo, error)
	SearchCharacters(ctx context.Context, q anilist.SearchQuery) (*anilist.CharacterResult, error)
	GetCharacter(ctx context.Context, id int) (*models.Character, error)
}

type Bot struct {
	Session Session
	AniList AniList
	Store   watchlist.Store
	Tokens  auth.TokenService
	Logger  *zap.Logger

	AppID   string
	GuildID string // empty registers commands globally

	Timeout time.Duration
}

func New(s Session, api AniList, store watchlist.Store, tokens auth.TokenService, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		Session: s,
		AniList: api,
		Store:   store,
		Tokens:  tokens,
		Logger:  logger.With(zap.String("component", "bot")),
		Timeout: 30 * time.Second,
	}
}

// Register overwrites the application's slash commands with Commands().
func (b *Bot) Register(ctx context.Context) ([]*discordgo.ApplicationCommand, error) {
	if b.AppID == "" {
		return nil, errors.New("register commands: application id required")
	}
	created, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, b.GuildID, Commands(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}
	b.Logger.Info("commands registered", zap.Int("count", len(created)), zap.String("guild", b.GuildID))
	return created, nil
}

// Attach routes the session's interaction events to the bot.
func (b *Bot) Attach(s *discordgo.Session) {
	s.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		ctx, cancel := context.WithTimeout(context.Background(), b.Timeout)
		defer cancel()
		b.Handle(ctx, ic.Interaction)
	})
}

// Handle dispatches one interaction. Failures are reported to the user and
// logged; nothing is returned.
func (b *Bot) Handle(ctx context.Context, i *discordgo.Interaction) {
	var (
		name string
		err  error
	)
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
		err = b.handleCommand(ctx, i, name)
	case discordgo.InteractionMessageComponent:
		name = "component"
		err = b.handleComponent(ctx, i)
	default:
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
		b.Logger.Warn("interaction failed",
			zap.String("name", name),
			zap.String("user", userOf(i).ID),
			zap.Error(err))
	}
	metrics.Commands.WithLabelValues(name, outcome).Inc()
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.Interaction, name string) error {
	opts := optionsOf(i)
	switch name {
	case "ping":
		return b.ping(ctx, i)
	case "anime":
		return b.searchAnime(ctx, i, kindAnime, opts.name, opts.id("anime_id"))
	case "airing":
		return b.searchAnime(ctx, i, kindAiring, opts.name, opts.id("anime_id"))
	case "character":
		return b.searchCharacter(ctx, i, opts.name, opts.id("char_id"))
	case "rw":
		return b.showWatchlist(ctx, i)
	case "add_rw":
		return b.searchAnime(ctx, i, kindAdd, opts.name, opts.id("anime_id"))
	case "remove_rw":
		return b.removeCommand(ctx, i, opts.id("anime_id"))
	case "dashboard":
		return b.dashboard(ctx, i)
	default:
		return fmt.Errorf("unknown command %q", name)
	}
}

type commandOptions struct {
	name string
	ids  map[string]int
}

func (o commandOptions) id(name string) int {
	return o.ids[name]
}

func optionsOf(i *discordgo.Interaction) commandOptions {
	out := commandOptions{ids: map[string]int{}}
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionString:
			if opt.Name == "name" {
				out.name = opt.StringValue()
			}
		case discordgo.ApplicationCommandOptionInteger:
			out.ids[opt.Name] = int(opt.IntValue())
		}
	}
	return out
}

func userOf(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

func authorOf(i *discordgo.Interaction) format.Author {
	u := userOf(i)
	a := format.Author{Name: u.Username}
	if u.ID != "" {
		a.IconURL = u.AvatarURL("")
	}
	return a
}

// createdAt is the interaction's own timestamp, read from its snowflake id.
func createdAt(i *discordgo.Interaction) time.Time {
	if t, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
		return t
	}
	return time.Now()
}
