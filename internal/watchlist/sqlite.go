package watchlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"anilistbot/pkg/models"
)

// Repo is the SQLite backend.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Add(ctx context.Context, e models.WatchlistEntry) (bool, error) {
	if err := validate(e); err != nil {
		return false, err
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now()
	}
	// stored as text, so one zone keeps ORDER BY added_at chronological
	e.AddedAt = e.AddedAt.UTC()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO rewatch (user_id, anime_id, name_romaji, name_english, link, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, anime_id) DO NOTHING
	`, e.UserID, e.AnimeID, e.NameRomaji, e.NameEnglish, e.Link, e.AddedAt)
	if err != nil {
		return false, fmt.Errorf("insert rewatch entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}

	_, err = r.DB.ExecContext(ctx, `
		UPDATE rewatch SET name_romaji = ?, name_english = ?, link = ?
		WHERE user_id = ? AND anime_id = ?
	`, e.NameRomaji, e.NameEnglish, e.Link, e.UserID, e.AnimeID)
	if err != nil {
		return false, fmt.Errorf("refresh rewatch entry: %w", err)
	}
	return false, nil
}

func (r *Repo) List(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT user_id, anime_id, name_romaji, COALESCE(name_english, ''), link, added_at
		FROM rewatch
		WHERE user_id = ?
		ORDER BY added_at ASC, anime_id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list rewatch: %w", err)
	}
	defer rows.Close()

	out := make([]models.WatchlistEntry, 0)
	for rows.Next() {
		var e models.WatchlistEntry
		if err := rows.Scan(&e.UserID, &e.AnimeID, &e.NameRomaji, &e.NameEnglish, &e.Link, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan rewatch row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT user_id, anime_id, name_romaji, COALESCE(name_english, ''), link, added_at
		FROM rewatch
		WHERE user_id = ? AND anime_id = ?
	`, userID, animeID)

	var e models.WatchlistEntry
	if err := row.Scan(&e.UserID, &e.AnimeID, &e.NameRomaji, &e.NameEnglish, &e.Link, &e.AddedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rewatch entry: %w", err)
	}
	return &e, nil
}

func (r *Repo) Remove(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	e, err := r.Get(ctx, userID, animeID)
	if err != nil || e == nil {
		return nil, err
	}

	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM rewatch
		WHERE user_id = ? AND anime_id = ?
	`, userID, animeID)
	if err != nil {
		return nil, fmt.Errorf("delete rewatch entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// removed concurrently
		return nil, nil
	}
	return e, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
