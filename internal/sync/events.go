package sync

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventWatchlistAdd    = "watchlist.add"
	EventWatchlistRemove = "watchlist.remove"
)

type WatchlistEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "watchlist.add" or "watchlist.remove"
	UserID      string    `json:"user_id"`
	AnimeID     int       `json:"anime_id"`
	NameRomaji  string    `json:"name_romaji,omitempty"`
	NameEnglish string    `json:"name_english,omitempty"`
	At          time.Time `json:"at"`
}

func NewWatchlistEvent(kind, userID string, animeID int, romaji, english string) WatchlistEvent {
	return WatchlistEvent{
		ID:          uuid.NewString(),
		Type:        kind,
		UserID:      userID,
		AnimeID:     animeID,
		NameRomaji:  romaji,
		NameEnglish: english,
		At:          time.Now().UTC(),
	}
}
