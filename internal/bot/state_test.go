package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anilistbot/pkg/models"
)

func TestPageStateRoundTrip(t *testing.T) {
	s := pageState{Kind: kindCharacter, Page: 3, Query: "re:zero"}
	assert.Equal(t, "char:3:re:zero", s.customID())

	got, err := parseState(s.customID())
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestParseStateRejects(t *testing.T) {
	for _, id := range []string{"", "anime", "anime:x:q", "anime:0:q", "nope:1:q"} {
		_, err := parseState(id)
		assert.Error(t, err, id)
	}
}

func TestCustomIDFitsLimit(t *testing.T) {
	s := pageState{Kind: kindRemove, Page: 1234, Query: strings.Repeat("é", 120)}
	assert.Equal(t, customIDLimit, utf8.RuneCountInString(s.customID()))
}

func TestPageOf(t *testing.T) {
	entries := make([]models.WatchlistEntry, 60)
	for i := range entries {
		entries[i].AnimeID = i + 1
	}

	page, info := pageOf(entries, 1)
	assert.Len(t, page, 25)
	assert.Equal(t, models.PageInfo{Total: 60, CurrentPage: 1, LastPage: 3, HasNextPage: true}, info)

	page, info = pageOf(entries, 3)
	assert.Len(t, page, 10)
	assert.Equal(t, 51, page[0].AnimeID)
	assert.False(t, info.HasNextPage)

	page, info = pageOf(entries, 9)
	assert.Equal(t, 3, info.CurrentPage)
	assert.Len(t, page, 10)

	page, info = pageOf(nil, 1)
	assert.Empty(t, page)
	assert.Equal(t, 1, info.LastPage)
}
