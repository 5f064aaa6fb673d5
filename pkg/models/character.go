package models

// Character is the detailed record for a single character.
type Character struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	AltNames    []string     `json:"alt_names"`
	Description string       `json:"description"`
	Gender      string       `json:"gender,omitempty"`
	Age         string       `json:"age,omitempty"`
	Birthdate   string       `json:"birthdate"`
	Image       string       `json:"image"`
	SiteURL     string       `json:"site_url"`
	AppearsIn   []Appearance `json:"appears_in"`
}

// Appearance is a media entry the character shows up in.
type Appearance struct {
	Type        string `json:"type"` // "anime" or "manga"
	NameRomaji  string `json:"name_romaji"`
	NameEnglish string `json:"name_english,omitempty"`
}

// CharacterSummary is one row of a paginated character search.
type CharacterSummary struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender,omitempty"`
	FirstMedia string `json:"first_media,omitempty"` // romaji title of the first media edge
}
