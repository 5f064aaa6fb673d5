package watchlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anilistbot/pkg/utils"
)

func TestOpenSQLite(t *testing.T) {
	t.Setenv("ANILISTBOT_DB_PATH", filepath.Join(t.TempDir(), "data", "bot.db"))
	ctx := context.Background()

	store, closeFn, err := Open(ctx, utils.StoreConfig{Backend: "sqlite"}, nil)
	require.NoError(t, err)
	defer closeFn()

	added, err := store.Add(ctx, entry("1", 2, "x"))
	require.NoError(t, err)
	assert.True(t, added)
	assert.NoError(t, store.Ping(ctx))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), utils.StoreConfig{Backend: "mongo"}, nil)
	assert.ErrorContains(t, err, "mongo")
}
