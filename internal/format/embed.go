package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"anilistbot/pkg/models"
)

// Embed colours.
var (
	WatchlistColor = RGB(147, 112, 219)
	CharacterColor = RGB(88, 101, 242) // Discord blurple
	AiringColor    = RGB(2, 169, 255)
)

const adultWarning = ":warning:"

// Author is the user an embed is rendered for.
type Author struct {
	Name    string
	IconURL string
}

func (a Author) embedAuthor() *discordgo.MessageEmbedAuthor {
	if a.Name == "" {
		return nil
	}
	return &discordgo.MessageEmbedAuthor{Name: a.Name, IconURL: a.IconURL}
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

// AnimeEmbed renders the detail card for one anime.
func AnimeEmbed(a *models.Anime, author Author, at time.Time) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     Truncate(a.NameRomaji, TitleLimit),
		URL:       a.SiteURL,
		Color:     CoverColor(a.CoverColor),
		Timestamp: at.UTC().Format(time.RFC3339),
		Author:    author.embedAuthor(),
	}
	if a.NameEnglish != "" && a.NameEnglish != a.NameRomaji {
		e.Description = a.NameEnglish
	}
	if a.BannerImage != "" {
		e.Image = &discordgo.MessageEmbedImage{URL: a.BannerImage}
	}
	if a.CoverImage != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: a.CoverImage}
	}

	var desc string
	if a.IsAdult {
		wrap := len(adultWarning+"||") * 2
		desc = adultWarning + "||" + AnimeText(a.Description, FieldLimit-wrap) + "||" + adultWarning
	} else {
		desc = AnimeText(a.Description, FieldLimit)
	}

	e.Fields = []*discordgo.MessageEmbedField{
		field("Description", desc, false),
		field("Start Date:", AnimeText(a.StartDate, FieldLimit), true),
		field("End Date:", AnimeText(a.EndDate, FieldLimit), true),
		field("Season:", AnimeText(a.Season, FieldLimit), true),
		field("Airing Format:", airingFormat(a), true),
		field("Airing Status:", AnimeText(a.Status, FieldLimit), true),
		field("Genres:", AnimeText(strings.Join(a.Genres, ", "), FieldLimit), true),
	}

	switch {
	case a.NotYetAired:
		e.Fields = append(e.Fields, field("Next Episode:", "Not Yet Released", true))
	case a.NextAiring != nil:
		e.Fields = append(e.Fields, field("Next Episode:", nextEpisode(a.NextAiring), false))
	case a.Status == "Finished":
		e.Fields = append(e.Fields, field("Next Episode:", "This anime has finished Airing!", true))
	default:
		e.Fields = append(e.Fields, field("Next Episode:", NotAvailable, true))
	}

	score := NotAvailable
	if a.AverageScore > 0 {
		score = fmt.Sprintf("**%d**/100", a.AverageScore)
	}
	e.Fields = append(e.Fields, field("Average Score:", score, true))
	return e
}

func airingFormat(a *models.Anime) string {
	var b strings.Builder
	if a.OriginCountry != "" {
		b.WriteString(":flag_" + a.OriginCountry + ": ")
	}
	if a.Format == "" {
		b.WriteString(NotAvailable)
	} else {
		b.WriteString(a.Format)
	}
	if a.Episodes > 0 {
		if a.Duration > 0 {
			fmt.Fprintf(&b, " (%d Episodes, %d minutes)", a.Episodes, a.Duration)
		} else {
			fmt.Fprintf(&b, " (%d Episodes)", a.Episodes)
		}
	}
	return b.String()
}

// nextEpisode uses Discord timestamp markup so every reader sees their own
// timezone plus a relative countdown.
func nextEpisode(n *models.NextEpisode) string {
	ts := strconv.FormatInt(n.AiringAt, 10)
	return fmt.Sprintf("Episode %d (<t:%s>, <t:%s:R>)", n.Episode, ts, ts)
}

// AiringEmbed renders the schedule card for a releasing anime.
func AiringEmbed(info *models.AiringInfo, author Author, at time.Time) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     Truncate(info.NameRomaji, TitleLimit),
		URL:       fmt.Sprintf("https://anilist.co/anime/%d", info.ID),
		Color:     AiringColor,
		Timestamp: at.UTC().Format(time.RFC3339),
		Author:    author.embedAuthor(),
	}
	if info.NameEnglish != "" && info.NameEnglish != info.NameRomaji {
		e.Description = info.NameEnglish
	}

	next := "No episode is scheduled yet."
	if info.Next != nil {
		next = nextEpisode(info.Next)
	}
	total := "Unknown"
	if info.Episodes > 0 {
		total = strconv.Itoa(info.Episodes)
	}
	e.Fields = []*discordgo.MessageEmbedField{
		field("Next Episode:", next, false),
		field("Total Episodes:", total, true),
	}
	return e
}

// CharacterEmbed renders the detail card for one character.
func CharacterEmbed(c *models.Character, author Author, at time.Time) *discordgo.MessageEmbed {
	alt := "None"
	if len(c.AltNames) > 0 {
		alt = Truncate(strings.Join(c.AltNames, ", "), DescriptionLimit)
	}
	e := &discordgo.MessageEmbed{
		Title:       Truncate(c.Name, TitleLimit),
		URL:         c.SiteURL,
		Description: alt,
		Color:       CharacterColor,
		Timestamp:   at.UTC().Format(time.RFC3339),
		Author:      author.embedAuthor(),
	}
	if c.Image != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.Image}
	}
	e.Fields = []*discordgo.MessageEmbedField{
		field("Description", CharacterText(c.Description, FieldLimit), true),
		field("Age:", OrNone(c.Age), false),
		field("Birthday:", OrNone(c.Birthdate), true),
		field("Appears In:", AppearsIn(c.AppearsIn), false),
	}
	return e
}

// WatchlistEmbed renders a user's Plan to Rewatch list.
func WatchlistEmbed(entries []models.WatchlistEntry, author Author, at time.Time) *discordgo.MessageEmbed {
	text := WatchlistText(entries, DescriptionLimit)
	if text == "" {
		text = "Your list is empty. Add something with /add_rw."
	}
	return &discordgo.MessageEmbed{
		Title:       "Plan to Rewatch",
		Description: text,
		Color:       WatchlistColor,
		Timestamp:   at.UTC().Format(time.RFC3339),
		Author:      author.embedAuthor(),
	}
}

func linkButton(label, url string) discordgo.Button {
	return discordgo.Button{Label: Truncate(label, ButtonLabelLimit), Style: discordgo.LinkButton, URL: url}
}

// AnimeLinkRows builds the AniList page and trailer link buttons.
func AnimeLinkRows(a *models.Anime) []discordgo.MessageComponent {
	if a.SiteURL == "" {
		return nil
	}
	layout := AnimeLinks(a.NameRomaji, a.TrailerURL != "")
	page := linkButton(layout.PageLabel, a.SiteURL)
	if layout.TrailerLabel == "" {
		return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{page}}}
	}
	trailer := linkButton(layout.TrailerLabel, a.TrailerURL)
	if layout.SplitRows {
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{page}},
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{trailer}},
		}
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{page, trailer}}}
}

// CharacterLinkRows builds the AniList page button for a character.
func CharacterLinkRows(c *models.Character) []discordgo.MessageComponent {
	if c.SiteURL == "" {
		return nil
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		linkButton(c.Name+" AniList Page", c.SiteURL),
	}}}
}
