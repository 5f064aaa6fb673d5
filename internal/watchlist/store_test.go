package watchlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"anilistbot/pkg/database"
	"anilistbot/pkg/models"
)

// storeSuite runs the same behaviour checks against every backend.
type storeSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
}

func (s *storeSuite) SetupTest() {
	s.store = s.newStore()
}

func entry(user string, id int, romaji string) models.WatchlistEntry {
	return models.WatchlistEntry{
		UserID:     user,
		AnimeID:    id,
		NameRomaji: romaji,
		Link:       "https://anilist.co/anime/" + romaji,
	}
}

func (s *storeSuite) TestAddIsIdempotent() {
	ctx := context.Background()
	e := entry("u1", 457, "Mushishi")

	added, err := s.store.Add(ctx, e)
	s.Require().NoError(err)
	s.True(added)

	first, err := s.store.Get(ctx, "u1", 457)
	s.Require().NoError(err)
	s.Require().NotNil(first)
	s.False(first.AddedAt.IsZero())

	e.NameEnglish = "Mushi-Shi"
	added, err = s.store.Add(ctx, e)
	s.Require().NoError(err)
	s.False(added)

	got, err := s.store.Get(ctx, "u1", 457)
	s.Require().NoError(err)
	s.Equal("Mushi-Shi", got.NameEnglish)
	s.True(first.AddedAt.Equal(got.AddedAt), "re-adding keeps the original time")

	list, err := s.store.List(ctx, "u1")
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *storeSuite) TestListOrderAndIsolation() {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, e := range []models.WatchlistEntry{
		entry("u1", 3, "C"), entry("u1", 1, "A"), entry("u1", 2, "B"),
	} {
		e.AddedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := s.store.Add(ctx, e)
		s.Require().NoError(err)
	}
	_, err := s.store.Add(ctx, entry("u2", 9, "Other"))
	s.Require().NoError(err)

	list, err := s.store.List(ctx, "u1")
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal([]int{3, 1, 2}, []int{list[0].AnimeID, list[1].AnimeID, list[2].AnimeID})

	empty, err := s.store.List(ctx, "nobody")
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *storeSuite) TestRemove() {
	ctx := context.Background()
	_, err := s.store.Add(ctx, entry("u1", 457, "Mushishi"))
	s.Require().NoError(err)

	removed, err := s.store.Remove(ctx, "u1", 457)
	s.Require().NoError(err)
	s.Require().NotNil(removed)
	s.Equal("Mushishi", removed.NameRomaji)

	again, err := s.store.Remove(ctx, "u1", 457)
	s.Require().NoError(err)
	s.Nil(again)

	got, err := s.store.Get(ctx, "u1", 457)
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *storeSuite) TestValidation() {
	ctx := context.Background()
	_, err := s.store.Add(ctx, entry("", 1, "x"))
	s.ErrorIs(err, ErrMissingUser)
	_, err = s.store.Add(ctx, entry("u1", 0, "x"))
	s.ErrorIs(err, ErrInvalidAnime)
	s.NoError(s.store.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &storeSuite{newStore: func() Store { return NewMemoryStore() }})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &storeSuite{newStore: func() Store {
		db, err := database.OpenMemory()
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := database.Migrate(context.Background(), db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return NewRepo(db)
	}})
}
