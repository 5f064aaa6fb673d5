package watchlist

import "errors"

var (
	ErrMissingUser  = errors.New("watchlist: user id required")
	ErrInvalidAnime = errors.New("watchlist: anime id must be positive")
)
