package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"anilistbot/internal/anilist"
)

// reply is what ends up in the deferred response.
type reply struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

func (b *Bot) deferReply(ctx context.Context, i *discordgo.Interaction, ephemeral bool) error {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredChannelMessageWithSource}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := b.Session.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("defer response: %w", err)
	}
	return nil
}

// deferUpdate acknowledges a component whose own message will be edited.
func (b *Bot) deferUpdate(ctx context.Context, i *discordgo.Interaction) error {
	resp := &discordgo.InteractionResponse{Type: discordgo.InteractionResponseDeferredMessageUpdate}
	if err := b.Session.InteractionRespond(i, resp, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("defer update: %w", err)
	}
	return nil
}

func (b *Bot) send(ctx context.Context, i *discordgo.Interaction, r reply) error {
	embeds := r.Embeds
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	components := r.Components
	if components == nil {
		components = []discordgo.MessageComponent{}
	}
	edit := &discordgo.WebhookEdit{
		Content:    &r.Content,
		Embeds:     &embeds,
		Components: &components,
	}
	if _, err := b.Session.InteractionResponseEdit(i, edit, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("edit response: %w", err)
	}
	return nil
}

// fail shows err to the user and hands it back for logging. AniList's own
// error report is passed through as is.
func (b *Bot) fail(ctx context.Context, i *discordgo.Interaction, err error) error {
	if sendErr := b.send(ctx, i, reply{Content: failureText(err)}); sendErr != nil {
		return errors.Join(err, sendErr)
	}
	return err
}

// failPage reports err on a paged message without dropping its embeds or
// pager, so the user can try the button again.
func (b *Bot) failPage(ctx context.Context, i *discordgo.Interaction, err error) error {
	msg := failureText(err)
	edit := &discordgo.WebhookEdit{Content: &msg}
	if _, editErr := b.Session.InteractionResponseEdit(i, edit, discordgo.WithContext(ctx)); editErr != nil {
		return errors.Join(err, fmt.Errorf("edit page: %w", editErr))
	}
	return err
}

func failureText(err error) string {
	var apiErr *anilist.APIError
	if errors.As(err, &apiErr) {
		return "AniList error: " + strings.TrimPrefix(apiErr.Error(), "anilist: ")
	}
	return "Something went wrong, please try again later."
}
