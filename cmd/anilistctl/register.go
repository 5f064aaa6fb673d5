package main

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"anilistbot/internal/auth"
	"anilistbot/internal/bot"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Overwrite the bot's slash commands",
	Long: `Registers the slash-command set with Discord, replacing whatever was there.
Commands go to DISCORD_GUILD_ID when set (instant) or globally otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RequireDiscord(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		session, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			return fmt.Errorf("create discord session: %w", err)
		}

		b := bot.New(session, nil, nil, auth.TokenService{}, logger)
		b.AppID = cfg.Discord.AppID
		b.GuildID = cfg.Discord.GuildID

		created, err := b.Register(ctx)
		if err != nil {
			return err
		}
		for _, c := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "/%s\n", c.Name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Synced %d commands.\n", len(created))
		return nil
	},
}
