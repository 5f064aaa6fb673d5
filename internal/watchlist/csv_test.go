package watchlist

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anilistbot/pkg/database"
	"anilistbot/pkg/models"
)

func TestCSVRoundTrip(t *testing.T) {
	in := []models.WatchlistEntry{
		{UserID: "42", AnimeID: 457, NameRomaji: "Mushishi", Link: "https://anilist.co/anime/457",
			AddedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{UserID: "42", AnimeID: 154587, NameRomaji: "Sousou no Frieren", NameEnglish: "Frieren, Beyond Journey's End",
			Link: "https://anilist.co/anime/154587", AddedAt: time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), "user_id,anime_id,name_romaji,name_english,link,added_at\n"))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVByHeader(t *testing.T) {
	src := "anime_id,link,user_id,extra\n" +
		"1,https://anilist.co/anime/1,7,x\n" +
		",https://anilist.co/anime/2,7,x\n" +
		"3,https://anilist.co/anime/3,,x\n"
	out, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "7", out[0].UserID)
	assert.Equal(t, 1, out[0].AnimeID)
	assert.True(t, out[0].AddedAt.IsZero())

	_, err = ReadCSV(strings.NewReader("user_id,anime_id\n7,abc\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestReadCSVNormalizesOffsets(t *testing.T) {
	src := "user_id,anime_id,name_romaji,link,added_at\n" +
		"7,1,Later,l1,2024-03-01T05:00:00Z\n" +
		"7,2,Earlier,l2,2024-03-01T12:00:00+09:00\n"
	out, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, time.UTC, out[1].AddedAt.Location())
	assert.Equal(t, time.Date(2024, 3, 1, 3, 0, 0, 0, time.UTC), out[1].AddedAt)

	db, err := database.OpenMemory()
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))
	repo := NewRepo(db)
	for _, e := range out {
		_, err := repo.Add(ctx, e)
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, "7")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Earlier", got[0].NameRomaji)
	assert.Equal(t, "Later", got[1].NameRomaji)
}
