package cache

import (
	"context"
	"errors"

	"github.com/fjod/swiftrail/domain"
)

// TripCache holds trip search results keyed by route and date.
type TripCache interface {
	Get(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error)
	Set(ctx context.Context, departure, arrival, date string, trips []domain.Trip) error
	Delete(ctx context.Context, departure, arrival, date string) error
}

var ErrCacheMiss = errors.New("cache miss")
