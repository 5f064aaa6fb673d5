package models

// Anime is the fully detailed record shown when a search resolves to a
// single title. Fields mirror what the AniList Media query returns after
// flattening; optional numeric fields are zero when AniList has no value.
type Anime struct {
	ID            int          `json:"id"`
	NameRomaji    string       `json:"name_romaji"`
	NameEnglish   string       `json:"name_english,omitempty"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	CoverImage    string       `json:"cover_image"`
	CoverColor    string       `json:"cover_color,omitempty"`
	BannerImage   string       `json:"banner_image,omitempty"`
	Format        string       `json:"airing_format"`
	Status        string       `json:"airing_status"`
	Episodes      int          `json:"airing_episodes,omitempty"`
	Duration      int          `json:"episode_duration,omitempty"`
	Season        string       `json:"season,omitempty"`
	Description   string       `json:"desc"`
	AverageScore  int          `json:"average_score,omitempty"`
	Genres        []string     `json:"genres"`
	NextAiring    *NextEpisode `json:"next_airing_episode,omitempty"`
	NotYetAired   bool         `json:"not_yet_aired"`
	IsAdult       bool         `json:"is_adult"`
	OriginCountry string       `json:"origin_country"`
	SiteURL       string       `json:"site_url"`
	TrailerURL    string       `json:"trailer_url,omitempty"`
}

// NextEpisode is AniList's nextAiringEpisode node.
type NextEpisode struct {
	Episode         int   `json:"episode"`
	AiringAt        int64 `json:"airingAt"`
	TimeUntilAiring int64 `json:"timeUntilAiring"`
}

// AiringInfo answers "when is the next episode" for a releasing title.
type AiringInfo struct {
	ID          int          `json:"id"`
	NameRomaji  string       `json:"name_romaji"`
	NameEnglish string       `json:"name_english,omitempty"`
	Episodes    int          `json:"episodes,omitempty"`
	Next        *NextEpisode `json:"next,omitempty"`
}

// AnimeSummary is one row of a paginated search result.
type AnimeSummary struct {
	ID          int    `json:"id"`
	NameRomaji  string `json:"name_romaji"`
	NameEnglish string `json:"name_english,omitempty"`
}

// PageInfo is AniList's pagination block.
type PageInfo struct {
	Total       int  `json:"total"`
	CurrentPage int  `json:"currentPage"`
	LastPage    int  `json:"lastPage"`
	HasNextPage bool `json:"hasNextPage"`
}
