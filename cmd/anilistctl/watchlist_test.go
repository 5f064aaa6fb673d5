package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"anilistbot/internal/watchlist"
)

func TestImportEntriesSkipsBadRows(t *testing.T) {
	logger = zap.NewNop()
	store := watchlist.NewMemoryStore()
	ctx := context.Background()

	n := importEntries(ctx, store, []watchlist.Entry{
		{UserID: "1", AnimeID: 10, NameRomaji: "A"},
		{UserID: "1", AnimeID: 10, NameRomaji: "A"},
		{UserID: "1", AnimeID: -1},
		{UserID: "2", AnimeID: 11, NameRomaji: "B"},
	})
	assert.Equal(t, 2, n)

	list, err := store.List(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
