package bot

import "github.com/bwmarrin/discordgo"

const queryMaxLength = 80

func nameOption(desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: desc,
		Required:    true,
		MaxLength:   queryMaxLength,
	}
}

func idOption(name, desc string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: desc,
	}
}

// Commands is the slash-command set registered with Discord.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{Name: "ping", Description: "Displays client latency."},
		{
			Name:        "anime",
			Description: "Look up an anime on AniList.",
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Title to search for"),
				idOption("anime_id", "AniList id, to pick one exact title"),
			},
		},
		{
			Name:        "airing",
			Description: "When does the next episode of a releasing anime air?",
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Title to search for"),
				idOption("anime_id", "AniList id, to pick one exact title"),
			},
		},
		{
			Name:        "character",
			Description: "Look up a character on AniList.",
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Character name to search for"),
				idOption("char_id", "AniList id, to pick one exact character"),
			},
		},
		{Name: "rw", Description: "Gets your Plan to Rewatch list."},
		{
			Name:        "add_rw",
			Description: "Add an anime to your Plan to Rewatch list.",
			Options: []*discordgo.ApplicationCommandOption{
				nameOption("Title to search for"),
				idOption("anime_id", "AniList id, to pick one exact title"),
			},
		},
		{
			Name:        "remove_rw",
			Description: "Remove an anime from your Plan to Rewatch list.",
			Options: []*discordgo.ApplicationCommandOption{
				idOption("anime_id", "AniList id of the entry; leave empty to choose from your list"),
			},
		},
		{Name: "dashboard", Description: "Get a short-lived token for the watchlist dashboard."},
	}
}
