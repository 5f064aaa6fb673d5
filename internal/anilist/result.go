package anilist

import "anilistbot/pkg/models"

// Kind is the shape a search collapses to.
type Kind int

const (
	NotFound Kind = iota
	Single
	List
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Single:
		return "single"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Decide maps a page of search hits onto a result kind: nothing matched,
// exactly one hit and no further pages, or a list to paginate.
func Decide(count int, page models.PageInfo) Kind {
	switch {
	case count == 0:
		return NotFound
	case count == 1 && page.LastPage <= 1:
		return Single
	default:
		return List
	}
}

// SearchQuery drives both anime and character searches. ID narrows the
// search to a single entry; Status only applies to anime.
type SearchQuery struct {
	Name   string
	ID     int
	Page   int
	Status string
}

// StatusReleasing restricts an anime search to titles currently airing.
const StatusReleasing = "RELEASING"

// AnimeResult is the normalized outcome of SearchAnime. For Single, exactly
// one of Anime and Airing is set: Airing when the search was for releasing
// titles.
type AnimeResult struct {
	Kind   Kind                  `json:"kind"`
	Anime  *models.Anime         `json:"anime,omitempty"`
	Airing *models.AiringInfo    `json:"airing,omitempty"`
	Items  []models.AnimeSummary `json:"items,omitempty"`
	Page   models.PageInfo       `json:"page_info"`
}

// CharacterResult is the normalized outcome of SearchCharacters.
type CharacterResult struct {
	Kind      Kind                      `json:"kind"`
	Character *models.Character         `json:"character,omitempty"`
	Items     []models.CharacterSummary `json:"items,omitempty"`
	Page      models.PageInfo           `json:"page_info"`
}
