package anilist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"anilistbot/pkg/models"
)

type mediaTitle struct {
	Romaji  string `json:"romaji"`
	English string `json:"english"`
}

type fuzzyDate struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// String renders day/month/year, skipping the parts AniList does not know.
// A date with no parts renders empty.
func (d fuzzyDate) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []*int{d.Day, d.Month, d.Year} {
		if p != nil {
			parts = append(parts, strconv.Itoa(*p))
		}
	}
	return strings.Join(parts, "/")
}

type searchAnimeData struct {
	Page *struct {
		PageInfo models.PageInfo `json:"pageInfo"`
		Media    []struct {
			ID    int        `json:"id"`
			Title mediaTitle `json:"title"`
		} `json:"media"`
	} `json:"Page"`
}

type mediaData struct {
	Media *struct {
		ID         int        `json:"id"`
		Title      mediaTitle `json:"title"`
		StartDate  fuzzyDate  `json:"startDate"`
		EndDate    fuzzyDate  `json:"endDate"`
		CoverImage struct {
			Large string `json:"large"`
			Color string `json:"color"`
		} `json:"coverImage"`
		BannerImage       string              `json:"bannerImage"`
		Format            string              `json:"format"`
		Status            string              `json:"status"`
		Episodes          int                 `json:"episodes"`
		Duration          int                 `json:"duration"`
		Season            string              `json:"season"`
		Description       string              `json:"description"`
		AverageScore      int                 `json:"averageScore"`
		Genres            []string            `json:"genres"`
		NextAiringEpisode *models.NextEpisode `json:"nextAiringEpisode"`
		IsAdult           bool                `json:"isAdult"`
		CountryOfOrigin   string              `json:"countryOfOrigin"`
		SiteURL           string              `json:"siteUrl"`
		Trailer           *struct {
			ID   string `json:"id"`
			Site string `json:"site"`
		} `json:"trailer"`
	} `json:"Media"`
}

// SearchAnime runs a paged title search and collapses it: no hits is
// NotFound, a lone hit is fetched in full (next-airing details when the
// search was for releasing titles), anything else is returned as a page.
func (c *Client) SearchAnime(ctx context.Context, q SearchQuery) (*AnimeResult, error) {
	vars := pageVars(q.Name, q.ID, q.Page)
	vars["perpage"] = perPage
	if q.Status != "" {
		vars["status"] = q.Status
	}

	var data searchAnimeData
	if err := c.do(ctx, "search_anime", searchAnimeQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Page == nil {
		return nil, fmt.Errorf("anilist: search_anime: empty page")
	}

	res := &AnimeResult{Page: data.Page.PageInfo}
	res.Kind = Decide(len(data.Page.Media), res.Page)

	switch res.Kind {
	case Single:
		id := data.Page.Media[0].ID
		if q.Status == StatusReleasing {
			airing, err := c.GetNextAiring(ctx, id)
			if err != nil {
				return nil, err
			}
			res.Airing = airing
			return res, nil
		}
		anime, err := c.GetAnime(ctx, id)
		if err != nil {
			return nil, err
		}
		res.Anime = anime
	case List:
		res.Items = make([]models.AnimeSummary, 0, len(data.Page.Media))
		for _, m := range data.Page.Media {
			res.Items = append(res.Items, models.AnimeSummary{
				ID:          m.ID,
				NameRomaji:  m.Title.Romaji,
				NameEnglish: m.Title.English,
			})
		}
	}
	return res, nil
}

// GetAnime fetches every field the detail view shows.
func (c *Client) GetAnime(ctx context.Context, id int) (*models.Anime, error) {
	var data mediaData
	if err := c.do(ctx, "anime", animeQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	m := data.Media
	if m == nil {
		return nil, errNotFound()
	}

	a := &models.Anime{
		ID:            m.ID,
		NameRomaji:    m.Title.Romaji,
		NameEnglish:   m.Title.English,
		StartDate:     m.StartDate.String(),
		EndDate:       m.EndDate.String(),
		CoverImage:    m.CoverImage.Large,
		CoverColor:    m.CoverImage.Color,
		BannerImage:   m.BannerImage,
		Format:        m.Format,
		Status:        titleStatus(m.Status),
		Episodes:      m.Episodes,
		Duration:      m.Duration,
		Season:        m.Season,
		Description:   m.Description,
		AverageScore:  m.AverageScore,
		Genres:        m.Genres,
		IsAdult:       m.IsAdult,
		OriginCountry: strings.ToLower(m.CountryOfOrigin),
		SiteURL:       m.SiteURL,
	}
	if m.Status == "NOT_YET_RELEASED" {
		a.NotYetAired = true
	} else {
		a.NextAiring = m.NextAiringEpisode
	}
	if m.Trailer != nil && m.Trailer.ID != "" {
		a.TrailerURL = trailerURL(m.Trailer.Site, m.Trailer.ID)
	}
	return a, nil
}

// GetNextAiring fetches the next-episode schedule for one title. Next is nil
// when AniList has nothing scheduled.
func (c *Client) GetNextAiring(ctx context.Context, id int) (*models.AiringInfo, error) {
	var data mediaData
	if err := c.do(ctx, "next_airing", nextAiringQuery, map[string]any{"id": id}, &data); err != nil {
		return nil, err
	}
	m := data.Media
	if m == nil {
		return nil, errNotFound()
	}
	return &models.AiringInfo{
		ID:          m.ID,
		NameRomaji:  m.Title.Romaji,
		NameEnglish: m.Title.English,
		Episodes:    m.Episodes,
		Next:        m.NextAiringEpisode,
	}, nil
}

// titleStatus turns NOT_YET_RELEASED into "Not Yet Released".
func titleStatus(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		w = strings.ToLower(w)
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func trailerURL(site, id string) string {
	if strings.EqualFold(site, "youtube") {
		return "https://youtube.com/watch?v=" + id
	}
	return "https://dailymotion.com/video/" + id
}
