package bot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"anilistbot/internal/anilist"
	"anilistbot/internal/format"
	"anilistbot/pkg/models"
)

func (b *Bot) ping(ctx context.Context, i *discordgo.Interaction) error {
	ms := float64(b.Session.HeartbeatLatency()) / float64(time.Millisecond)
	return b.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: fmt.Sprintf("%.1fms.", ms)},
	}, discordgo.WithContext(ctx))
}

// searchAnime backs /anime, /airing and /add_rw: they share the search and
// differ in what a single hit, or a pick from the list, turns into.
func (b *Bot) searchAnime(ctx context.Context, i *discordgo.Interaction, kind, name string, id int) error {
	if err := b.deferReply(ctx, i, false); err != nil {
		return err
	}

	q := anilist.SearchQuery{Name: name, ID: id, Page: 1}
	if kind == kindAiring {
		q.Status = anilist.StatusReleasing
	}
	res, err := b.AniList.SearchAnime(ctx, q)
	if err != nil {
		if anilist.IsNotFound(err) {
			return b.send(ctx, i, reply{Content: notFound(name, id)})
		}
		return b.fail(ctx, i, err)
	}

	switch res.Kind {
	case anilist.NotFound:
		if kind == kindAiring {
			return b.send(ctx, i, reply{Content: fmt.Sprintf("No releasing anime found for **%s**.", name)})
		}
		return b.send(ctx, i, reply{Content: notFound(name, id)})
	case anilist.Single:
		switch {
		case res.Airing != nil:
			return b.send(ctx, i, reply{Embeds: []*discordgo.MessageEmbed{format.AiringEmbed(res.Airing, authorOf(i), createdAt(i))}})
		case kind == kindAdd:
			return b.addToWatchlist(ctx, i, res.Anime)
		default:
			return b.send(ctx, i, animeReply(res.Anime, i))
		}
	default:
		state := pageState{Kind: kind, Page: res.Page.CurrentPage, Query: name}
		return b.send(ctx, i, reply{Components: pagerRows(state, animeOptions(res.Items), res.Page)})
	}
}

func (b *Bot) searchCharacter(ctx context.Context, i *discordgo.Interaction, name string, id int) error {
	if err := b.deferReply(ctx, i, false); err != nil {
		return err
	}

	res, err := b.AniList.SearchCharacters(ctx, anilist.SearchQuery{Name: name, ID: id, Page: 1})
	if err != nil {
		if anilist.IsNotFound(err) {
			return b.send(ctx, i, reply{Content: fmt.Sprintf("No character found for **%s**.", name)})
		}
		return b.fail(ctx, i, err)
	}

	switch res.Kind {
	case anilist.NotFound:
		return b.send(ctx, i, reply{Content: fmt.Sprintf("No character found for **%s**.", name)})
	case anilist.Single:
		return b.send(ctx, i, characterReply(res.Character, i))
	default:
		state := pageState{Kind: kindCharacter, Page: res.Page.CurrentPage, Query: name}
		return b.send(ctx, i, reply{Components: pagerRows(state, characterOptions(res.Items), res.Page)})
	}
}

func (b *Bot) showWatchlist(ctx context.Context, i *discordgo.Interaction) error {
	if err := b.deferReply(ctx, i, false); err != nil {
		return err
	}
	entries, err := b.Store.List(ctx, userOf(i).ID)
	if err != nil {
		return b.fail(ctx, i, err)
	}
	return b.send(ctx, i, reply{Embeds: []*discordgo.MessageEmbed{
		format.WatchlistEmbed(entries, authorOf(i), createdAt(i)),
	}})
}

func (b *Bot) addToWatchlist(ctx context.Context, i *discordgo.Interaction, a *models.Anime) error {
	e := models.WatchlistEntry{
		UserID:      userOf(i).ID,
		AnimeID:     a.ID,
		NameRomaji:  a.NameRomaji,
		NameEnglish: a.NameEnglish,
		Link:        a.SiteURL,
	}
	added, err := b.Store.Add(ctx, e)
	if err != nil {
		return b.fail(ctx, i, err)
	}
	if !added {
		return b.send(ctx, i, reply{Content: fmt.Sprintf("**%s** is already on your Plan to Rewatch list.", e.DisplayTitle())})
	}
	b.Logger.Info("watchlist add", zap.String("user", e.UserID), zap.Int("anime_id", e.AnimeID))
	return b.send(ctx, i, reply{Content: fmt.Sprintf("Successfully added **%s**", e.DisplayTitle())})
}

func (b *Bot) removeCommand(ctx context.Context, i *discordgo.Interaction, id int) error {
	if err := b.deferReply(ctx, i, false); err != nil {
		return err
	}
	if id != 0 {
		return b.removeFromWatchlist(ctx, i, id)
	}

	entries, err := b.Store.List(ctx, userOf(i).ID)
	if err != nil {
		return b.fail(ctx, i, err)
	}
	if len(entries) == 0 {
		return b.send(ctx, i, reply{Content: "Your Plan to Rewatch list is empty."})
	}
	page, info := pageOf(entries, 1)
	return b.send(ctx, i, reply{Components: pagerRows(pageState{Kind: kindRemove, Page: 1}, entryOptions(page), info)})
}

func (b *Bot) removeFromWatchlist(ctx context.Context, i *discordgo.Interaction, id int) error {
	removed, err := b.Store.Remove(ctx, userOf(i).ID, id)
	if err != nil {
		return b.fail(ctx, i, err)
	}
	if removed == nil {
		return b.send(ctx, i, reply{Content: fmt.Sprintf("Anime %d is not on your Plan to Rewatch list.", id)})
	}
	b.Logger.Info("watchlist remove", zap.String("user", removed.UserID), zap.Int("anime_id", id))
	return b.send(ctx, i, reply{Content: fmt.Sprintf("Successfully removed **%s**", removed.DisplayTitle())})
}

func (b *Bot) dashboard(ctx context.Context, i *discordgo.Interaction) error {
	if err := b.deferReply(ctx, i, true); err != nil {
		return err
	}
	u := userOf(i)
	token, exp, err := b.Tokens.Sign(u.ID, u.Username)
	if err != nil {
		return b.fail(ctx, i, err)
	}
	return b.send(ctx, i, reply{Content: fmt.Sprintf(
		"Your dashboard token expires <t:%d:R>. Send it as `Authorization: Bearer <token>`:\n```\n%s\n```",
		exp.Unix(), token)})
}

// handleComponent serves the select menus and pager buttons of a pagination view.
func (b *Bot) handleComponent(ctx context.Context, i *discordgo.Interaction) error {
	data := i.MessageComponentData()
	state, err := parseState(data.CustomID)
	if err != nil {
		return err
	}

	if data.ComponentType == discordgo.ButtonComponent {
		if err := b.deferUpdate(ctx, i); err != nil {
			return err
		}
		return b.turnPage(ctx, i, state)
	}

	if err := b.deferReply(ctx, i, false); err != nil {
		return err
	}
	if len(data.Values) == 0 {
		return b.send(ctx, i, reply{Content: "Nothing was selected."})
	}
	id, err := strconv.Atoi(data.Values[0])
	if err != nil {
		return b.fail(ctx, i, fmt.Errorf("bad selection %q: %w", data.Values[0], err))
	}
	return b.pick(ctx, i, state.Kind, id)
}

func (b *Bot) pick(ctx context.Context, i *discordgo.Interaction, kind string, id int) error {
	switch kind {
	case kindRemove:
		return b.removeFromWatchlist(ctx, i, id)
	case kindCharacter:
		ch, err := b.AniList.GetCharacter(ctx, id)
		if err != nil {
			return b.fail(ctx, i, err)
		}
		return b.send(ctx, i, characterReply(ch, i))
	case kindAiring:
		info, err := b.AniList.GetNextAiring(ctx, id)
		if err != nil {
			return b.fail(ctx, i, err)
		}
		return b.send(ctx, i, reply{Embeds: []*discordgo.MessageEmbed{format.AiringEmbed(info, authorOf(i), createdAt(i))}})
	}

	a, err := b.AniList.GetAnime(ctx, id)
	if err != nil {
		return b.fail(ctx, i, err)
	}
	if kind == kindAdd {
		return b.addToWatchlist(ctx, i, a)
	}
	return b.send(ctx, i, animeReply(a, i))
}

// turnPage re-runs the view's search for another page and swaps in the new
// menu. The embeds are left alone; the content only changes to report an
// empty page or a failed lookup.
func (b *Bot) turnPage(ctx context.Context, i *discordgo.Interaction, state pageState) error {
	options, info, err := b.pageOptions(ctx, i, state)
	if err != nil {
		return b.failPage(ctx, i, err)
	}

	var components []discordgo.MessageComponent
	content := ""
	if len(options) == 0 {
		content = "No more results."
		components = []discordgo.MessageComponent{}
	} else {
		components = pagerRows(state, options, info)
	}
	edit := &discordgo.WebhookEdit{Components: &components}
	if content != "" {
		edit.Content = &content
	}
	if _, err := b.Session.InteractionResponseEdit(i, edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit page: %w", err)
	}
	return nil
}

func (b *Bot) pageOptions(ctx context.Context, i *discordgo.Interaction, state pageState) ([]discordgo.SelectMenuOption, models.PageInfo, error) {
	switch state.Kind {
	case kindRemove:
		entries, err := b.Store.List(ctx, userOf(i).ID)
		if err != nil {
			return nil, models.PageInfo{}, fmt.Errorf("list watchlist: %w", err)
		}
		page, info := pageOf(entries, state.Page)
		return entryOptions(page), info, nil
	case kindCharacter:
		res, err := b.AniList.SearchCharacters(ctx, anilist.SearchQuery{Name: state.Query, Page: state.Page})
		if err != nil {
			return nil, models.PageInfo{}, err
		}
		return characterOptions(res.Items), res.Page, nil
	}

	q := anilist.SearchQuery{Name: state.Query, Page: state.Page}
	if state.Kind == kindAiring {
		q.Status = anilist.StatusReleasing
	}
	res, err := b.AniList.SearchAnime(ctx, q)
	if err != nil {
		return nil, models.PageInfo{}, err
	}
	return animeOptions(res.Items), res.Page, nil
}

func animeReply(a *models.Anime, i *discordgo.Interaction) reply {
	return reply{
		Embeds:     []*discordgo.MessageEmbed{format.AnimeEmbed(a, authorOf(i), createdAt(i))},
		Components: format.AnimeLinkRows(a),
	}
}

func characterReply(c *models.Character, i *discordgo.Interaction) reply {
	return reply{
		Embeds:     []*discordgo.MessageEmbed{format.CharacterEmbed(c, authorOf(i), createdAt(i))},
		Components: format.CharacterLinkRows(c),
	}
}

func notFound(name string, id int) string {
	if id != 0 {
		return fmt.Sprintf("No anime found with id %d.", id)
	}
	return fmt.Sprintf("No anime found for **%s**.", name)
}
