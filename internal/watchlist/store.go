package watchlist

import (
	"context"
	"sort"
	"strings"

	"anilistbot/internal/metrics"
	"anilistbot/internal/sync"
	"anilistbot/pkg/models"
)

// Entry is one title on a user's list.
type Entry = models.WatchlistEntry

// Store keeps each user's Plan to Rewatch list.
//
// Add reports added=false when the anime was already on the list; the stored
// titles and link are refreshed in that case. Get and Remove return nil when
// the entry does not exist.
type Store interface {
	Add(ctx context.Context, e models.WatchlistEntry) (added bool, err error)
	List(ctx context.Context, userID string) ([]models.WatchlistEntry, error)
	Get(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error)
	Remove(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error)
	Ping(ctx context.Context) error
}

// Publisher receives change events, normally a *sync.Hub.
type Publisher interface {
	Publish(ev sync.WatchlistEvent)
}

type tracked struct {
	Store
	backend string
	pub     Publisher
}

// Track wraps s so every operation is counted under backend and every
// successful change is published to pub (which may be nil).
func Track(s Store, backend string, pub Publisher) Store {
	return &tracked{Store: s, backend: backend, pub: pub}
}

func (t *tracked) count(op string) {
	metrics.WatchlistOps.WithLabelValues(op, t.backend).Inc()
}

func (t *tracked) Add(ctx context.Context, e models.WatchlistEntry) (bool, error) {
	t.count("add")
	added, err := t.Store.Add(ctx, e)
	if err == nil && added && t.pub != nil {
		go t.pub.Publish(sync.NewWatchlistEvent(sync.EventWatchlistAdd, e.UserID, e.AnimeID, e.NameRomaji, e.NameEnglish))
	}
	return added, err
}

func (t *tracked) List(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	t.count("list")
	return t.Store.List(ctx, userID)
}

func (t *tracked) Get(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	t.count("get")
	return t.Store.Get(ctx, userID, animeID)
}

func (t *tracked) Remove(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	t.count("remove")
	removed, err := t.Store.Remove(ctx, userID, animeID)
	if err == nil && removed != nil && t.pub != nil {
		go t.pub.Publish(sync.NewWatchlistEvent(sync.EventWatchlistRemove, userID, animeID, removed.NameRomaji, removed.NameEnglish))
	}
	return removed, err
}

func validate(e models.WatchlistEntry) error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrMissingUser
	}
	if e.AnimeID <= 0 {
		return ErrInvalidAnime
	}
	return nil
}

// sortEntries orders a list oldest first, the order titles were added in.
func sortEntries(entries []models.WatchlistEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].AddedAt.Before(entries[j].AddedAt)
		}
		return entries[i].AnimeID < entries[j].AnimeID
	})
}
