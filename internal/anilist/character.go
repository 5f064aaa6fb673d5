package anilist

import (
	"context"
	"fmt"
	"strings"

	"anilistbot/pkg/models"
)

type searchCharactersData struct {
	Page *struct {
		PageInfo   models.PageInfo `json:"pageInfo"`
		Characters []struct {
			ID   int `json:"id"`
			Name struct {
				Full string `json:"full"`
			} `json:"name"`
			Gender string `json:"gender"`
			Media  struct {
				Edges []struct {
					Node struct {
						Title mediaTitle `json:"title"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"media"`
		} `json:"characters"`
	} `json:"Page"`
}

type characterData struct {
	Character *struct {
		ID   int `json:"id"`
		Name struct {
			Full        string   `json:"full"`
			Alternative []string `json:"alternative"`
		} `json:"name"`
		Image struct {
			Large string `json:"large"`
		} `json:"image"`
		Description string    `json:"description"`
		DateOfBirth fuzzyDate `json:"dateOfBirth"`
		Gender      string    `json:"gender"`
		Age         string    `json:"age"`
		SiteURL     string    `json:"siteUrl"`
		Media       struct {
			Edges []struct {
				Node struct {
					Title mediaTitle `json:"title"`
					Type  string     `json:"type"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"media"`
	} `json:"Character"`
}

// SearchCharacters is the character counterpart of SearchAnime.
func (c *Client) SearchCharacters(ctx context.Context, q SearchQuery) (*CharacterResult, error) {
	vars := pageVars("", q.ID, q.Page)
	if name := strings.TrimSpace(q.Name); name != "" {
		vars["name"] = name
	}
	vars["per_page"] = perPage

	var data searchCharactersData
	if err := c.do(ctx, "search_characters", searchCharactersQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Page == nil {
		return nil, fmt.Errorf("anilist: search_characters: empty page")
	}

	res := &CharacterResult{Page: data.Page.PageInfo}
	res.Kind = Decide(len(data.Page.Characters), res.Page)

	switch res.Kind {
	case Single:
		ch, err := c.GetCharacter(ctx, data.Page.Characters[0].ID)
		if err != nil {
			return nil, err
		}
		res.Character = ch
	case List:
		res.Items = make([]models.CharacterSummary, 0, len(data.Page.Characters))
		for _, ch := range data.Page.Characters {
			s := models.CharacterSummary{
				ID:     ch.ID,
				Name:   ch.Name.Full,
				Gender: ch.Gender,
			}
			if len(ch.Media.Edges) > 0 {
				s.FirstMedia = ch.Media.Edges[0].Node.Title.Romaji
			}
			res.Items = append(res.Items, s)
		}
	}
	return res, nil
}

// GetCharacter fetches a character with the media it appears in, most
// popular first.
func (c *Client) GetCharacter(ctx context.Context, id int) (*models.Character, error) {
	var data characterData
	if err := c.do(ctx, "character", characterQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	ch := data.Character
	if ch == nil {
		return nil, errNotFound()
	}

	out := &models.Character{
		ID:          ch.ID,
		Name:        ch.Name.Full,
		Description: ch.Description,
		Gender:      ch.Gender,
		Age:         ch.Age,
		Birthdate:   ch.DateOfBirth.String(),
		Image:       ch.Image.Large,
		SiteURL:     ch.SiteURL,
		AltNames:    make([]string, 0, len(ch.Name.Alternative)),
		AppearsIn:   make([]models.Appearance, 0, len(ch.Media.Edges)),
	}
	for _, alt := range ch.Name.Alternative {
		if alt = strings.TrimSpace(alt); alt != "" {
			out.AltNames = append(out.AltNames, alt)
		}
	}
	for _, e := range ch.Media.Edges {
		out.AppearsIn = append(out.AppearsIn, models.Appearance{
			Type:        strings.ToLower(e.Node.Type),
			NameRomaji:  e.Node.Title.Romaji,
			NameEnglish: e.Node.Title.English,
		})
	}
	return out, nil
}
