package models

import "time"

// WatchlistEntry is one title in a user's Plan to Rewatch list.
type WatchlistEntry struct {
	UserID      string    `json:"user_id"`
	AnimeID     int       `json:"anime_id"`
	NameRomaji  string    `json:"name_romaji"`
	NameEnglish string    `json:"name_english,omitempty"`
	Link        string    `json:"link"`
	AddedAt     time.Time `json:"added_at"`
}

// DisplayTitle renders "Romaji (English)", or just the romaji title when
// there is no distinct English one.
func (e WatchlistEntry) DisplayTitle() string {
	if e.NameEnglish == "" || e.NameEnglish == e.NameRomaji {
		return e.NameRomaji
	}
	return e.NameRomaji + " (" + e.NameEnglish + ")"
}
