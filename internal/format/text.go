package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"anilistbot/pkg/models"
)

// Discord limits the formatter works within.
const (
	TitleLimit       = 256
	FieldLimit       = 1024
	DescriptionLimit = 4096
	OptionLimit      = 100
	ButtonLabelLimit = 80
)

const NotAvailable = "Not Available"

const ellipsis = "..."

// Truncate cuts s to at most max runes, ending in "..." when anything was cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= len(ellipsis) {
		return string(r[:max])
	}
	return string(r[:max-len(ellipsis)]) + ellipsis
}

var animeMarkup = strings.NewReplacer(
	"<br>", "",
	"<br/>", "",
	"<br />", "",
	"<i>", "*",
	"</i>", "*",
	"<b>", "**",
	"</b>", "**",
)

// AnimeText prepares an AniList anime field for an embed: HTML markup
// becomes Discord markdown, empty values become "Not Available" and long
// values are cut to fit within budget.
func AnimeText(s string, budget int) string {
	s = strings.TrimSpace(animeMarkup.Replace(s))
	if s == "" {
		return NotAvailable
	}
	if utf8.RuneCountInString(s) >= budget {
		return string([]rune(s)[:budget-9]) + ellipsis
	}
	return s
}

var characterMarkup = strings.NewReplacer(
	"~!", "||",
	"!~", "||",
	"__", "**",
)

// CharacterText converts AniList character markdown to Discord's: ~!x!~
// spoilers become ||x|| and __bold__ becomes **bold**. When the text has to
// be cut, a spoiler left open by the cut is closed again.
func CharacterText(s string, budget int) string {
	s = strings.TrimSpace(characterMarkup.Replace(s))
	if s == "" {
		return "None"
	}
	if utf8.RuneCountInString(s) <= budget {
		return s
	}
	kept := string([]rune(s)[:budget-5])
	// a cut through the middle of a "||" marker leaves a lone pipe
	if trailing := len(kept) - len(strings.TrimRight(kept, "|")); trailing%2 == 1 {
		kept = kept[:len(kept)-1]
	}
	if strings.Count(kept, "||")%2 == 1 {
		return kept + "||" + ellipsis
	}
	return kept + ellipsis
}

// OrNone renders missing character attributes the way the detail view shows them.
func OrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}

// HexToRGB parses "#rrggbb". ok is false for anything else.
func HexToRGB(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// RGB packs a colour the way Discord embeds expect it.
func RGB(r, g, b int) int {
	return r<<16 | g<<8 | b
}

// CoverColor is the embed colour for an anime, white when AniList has none.
func CoverColor(hex string) int {
	r, g, b, ok := HexToRGB(hex)
	if !ok {
		return RGB(255, 255, 255)
	}
	return RGB(r, g, b)
}

// AppearsIn lists the media a character is in, one "Type: Title" per line.
func AppearsIn(media []models.Appearance) string {
	lines := make([]string, 0, len(media))
	for _, m := range media {
		kind := m.Type
		if kind != "" {
			kind = strings.ToUpper(kind[:1]) + kind[1:]
		}
		if m.NameEnglish == "" || m.NameEnglish == m.NameRomaji {
			lines = append(lines, fmt.Sprintf("%s: %s", kind, m.NameRomaji))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s (%s)", kind, m.NameRomaji, m.NameEnglish))
		}
	}
	if len(lines) == 0 {
		return "None"
	}
	return Truncate(strings.Join(lines, "\n"), FieldLimit)
}

// WatchlistText renders entries as markdown links, one per line. When the
// list does not fit the budget it ends with "..." after the last whole line.
func WatchlistText(entries []models.WatchlistEntry, budget int) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("[%s](%s)", e.DisplayTitle(), e.Link))
	}
	full := strings.Join(lines, "\n")
	if utf8.RuneCountInString(full) <= budget {
		return full
	}

	var b strings.Builder
	used := 0
	for _, line := range lines {
		n := utf8.RuneCountInString(line) + 1
		if used+n+len(ellipsis) > budget {
			break
		}
		b.WriteString(line)
		b.WriteByte('\n')
		used += n
	}
	b.WriteString(ellipsis)
	return b.String()
}

// LinkLayout describes the AniList/trailer link buttons for an anime.
type LinkLayout struct {
	PageLabel    string
	TrailerLabel string
	SplitRows    bool // put each button on its own row
}

// AnimeLinks picks button labels that fit Discord's 80 rune limit: the title
// is included when it fits, and mid-length titles get a row each.
func AnimeLinks(romaji string, hasTrailer bool) LinkLayout {
	if !hasTrailer {
		if utf8.RuneCountInString(romaji+" AniList Page") > ButtonLabelLimit {
			return LinkLayout{PageLabel: "AniList Page"}
		}
		return LinkLayout{PageLabel: romaji + " AniList Page"}
	}

	n := utf8.RuneCountInString(romaji + " AniList Page")
	switch {
	case n > ButtonLabelLimit:
		return LinkLayout{PageLabel: "AniList Page", TrailerLabel: "Trailer"}
	case n > 40:
		return LinkLayout{PageLabel: romaji + " AniList Page", TrailerLabel: romaji + " trailer", SplitRows: true}
	default:
		return LinkLayout{PageLabel: romaji + " AniList Page", TrailerLabel: romaji + " trailer"}
	}
}
