package bot

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"anilistbot/internal/format"
	"anilistbot/pkg/models"
)

const (
	maxOptions = 25
	arrowLeft  = "◀"
	arrowRight = "▶"
	signMale   = "♂"
	signFemale = "♀"
)

func animeOptions(items []models.AnimeSummary) []discordgo.SelectMenuOption {
	out := make([]discordgo.SelectMenuOption, 0, len(items))
	for _, it := range items {
		opt := discordgo.SelectMenuOption{
			Label: format.Truncate(it.NameRomaji, format.OptionLimit),
			Value: strconv.Itoa(it.ID),
		}
		if it.NameEnglish != "" && it.NameEnglish != it.NameRomaji {
			opt.Description = format.Truncate(it.NameEnglish, format.OptionLimit)
		}
		out = append(out, opt)
	}
	return out
}

func characterOptions(items []models.CharacterSummary) []discordgo.SelectMenuOption {
	out := make([]discordgo.SelectMenuOption, 0, len(items))
	for _, it := range items {
		opt := discordgo.SelectMenuOption{
			Label:       format.Truncate(it.Name, format.OptionLimit),
			Value:       strconv.Itoa(it.ID),
			Description: format.Truncate(it.FirstMedia, format.OptionLimit),
		}
		switch it.Gender {
		case "Male":
			opt.Emoji = &discordgo.ComponentEmoji{Name: signMale}
		case "Female":
			opt.Emoji = &discordgo.ComponentEmoji{Name: signFemale}
		}
		out = append(out, opt)
	}
	return out
}

func entryOptions(entries []models.WatchlistEntry) []discordgo.SelectMenuOption {
	out := make([]discordgo.SelectMenuOption, 0, len(entries))
	for _, e := range entries {
		opt := discordgo.SelectMenuOption{
			Label: format.Truncate(e.NameRomaji, format.OptionLimit),
			Value: strconv.Itoa(e.AnimeID),
		}
		if e.NameEnglish != "" && e.NameEnglish != e.NameRomaji {
			opt.Description = format.Truncate(e.NameEnglish, format.OptionLimit)
		}
		out = append(out, opt)
	}
	return out
}

// pageOf slices a stored list the way AniList pages its search results.
func pageOf(entries []models.WatchlistEntry, page int) ([]models.WatchlistEntry, models.PageInfo) {
	last := (len(entries) + maxOptions - 1) / maxOptions
	if last < 1 {
		last = 1
	}
	if page < 1 {
		page = 1
	}
	if page > last {
		page = last
	}
	start := (page - 1) * maxOptions
	end := min(start+maxOptions, len(entries))
	return entries[start:end], models.PageInfo{
		Total:       len(entries),
		CurrentPage: page,
		LastPage:    last,
		HasNextPage: page < last,
	}
}

// pagerRows lays out a pagination view: the select menu on row 0 and the
// previous/next buttons on row 1.
func pagerRows(state pageState, options []discordgo.SelectMenuOption, info models.PageInfo) []discordgo.MessageComponent {
	if len(options) > maxOptions {
		options = options[:maxOptions]
	}
	page := info.CurrentPage
	if page < 1 {
		page = state.Page
	}
	last := max(info.LastPage, page)
	state = state.withPage(page)

	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    state.customID(),
		Placeholder: fmt.Sprintf("Page %d of %d", page, last),
		Options:     options,
	}
	prev := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Emoji:    &discordgo.ComponentEmoji{Name: arrowLeft},
		CustomID: state.withPage(page - 1).customID(),
		Disabled: page <= 1,
	}
	next := discordgo.Button{
		Style:    discordgo.PrimaryButton,
		Emoji:    &discordgo.ComponentEmoji{Name: arrowRight},
		CustomID: state.withPage(page + 1).customID(),
		Disabled: !info.HasNextPage,
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{menu}},
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{prev, next}},
	}
}
