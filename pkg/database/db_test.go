package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAndMigrate(t *testing.T) {
	cfg := Config{Path: filepath.Join(t.TempDir(), "nested", "data.db")}
	db, err := Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	// idempotent
	require.NoError(t, Migrate(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rewatch`).Scan(&n))
	require.Zero(t, n)
}

func TestDefaultConfigHonoursEnv(t *testing.T) {
	t.Setenv("ANILISTBOT_DB_PATH", "/tmp/x.db")
	require.Equal(t, "/tmp/x.db", DefaultConfig().Path)
}
