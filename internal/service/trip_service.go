package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/cache"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Bounds of generated timetables.
const (
	minGeneratedTrips = 3
	maxGeneratedTrips = 10
	minTripLength     = 60
	maxTripLength     = 239
	minTripPrice      = 50
	maxTripPrice      = 149
)

type TripService struct {
	trips *TripHandler
	cache cache.TripCache
	sfg   singleflight.Group // Prevents cache stampede
	log   *slog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTripService(trips *TripHandler, cache cache.TripCache, log *slog.Logger) *TripService {
	return NewTripServiceWithSource(trips, cache, log, rand.NewSource(time.Now().UnixNano()))
}

func NewTripServiceWithSource(trips *TripHandler, cache cache.TripCache, log *slog.Logger, src rand.Source) *TripService {
	return &TripService{
		trips: trips,
		cache: cache,
		log:   log.With("component", "trips"),
		rnd:   rand.New(src),
	}
}

// Search returns the trips of a route on a date, cheapest first. A route
// that has never been searched gets a generated timetable.
func (s *TripService) Search(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	if err := validateRoute(departure, arrival, date, "date"); err != nil {
		return nil, err
	}

	key := strings.Join([]string{departure, arrival, date}, "|")
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		trips, err := s.cache.Get(ctx, departure, arrival, date)
		if err == nil {
			return trips, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.WarnContext(ctx, "cache get error", "error", err)
		}

		trips, err = s.findTrips(ctx, departure, arrival, date)
		if err != nil {
			return nil, err
		}
		if len(trips) == 0 {
			if trips, err = s.generateRoute(ctx, departure, arrival, date); err != nil {
				return nil, err
			}
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, departure, arrival, date, trips); errSet != nil {
				s.log.Warn("cache set error", "error", errSet)
			}
		}()
		return trips, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Trip), nil
}

// Generate creates timetables for a route, and for the reverse route on the
// return date when a round trip is requested. It refuses when any of those
// routes already has trips. A round trip without a return date comes back on
// the departure date.
func (s *TripService) Generate(ctx context.Context, req domain.GenerateTripsRequest) (*domain.GenerateTripsResult, error) {
	if err := validateRoute(req.Departure, req.Arrival, req.DepartureDate, "departure_date"); err != nil {
		return nil, err
	}
	if req.RoundTrip && req.ReturnDate == "" {
		req.ReturnDate = req.DepartureDate
	}
	if req.RoundTrip {
		if err := validateDate(req.ReturnDate, "return_date"); err != nil {
			return nil, err
		}
		if req.ReturnDate < req.DepartureDate {
			return nil, newValidationError(ErrInvalidTrip, domain.FieldError{Field: "return_date", Message: "return date is before departure date"})
		}
	}

	if err := s.ensureEmpty(ctx, req.Departure, req.Arrival, req.DepartureDate); err != nil {
		return nil, err
	}
	if req.RoundTrip {
		if err := s.ensureEmpty(ctx, req.Arrival, req.Departure, req.ReturnDate); err != nil {
			return nil, err
		}
	}

	result := &domain.GenerateTripsResult{}
	var err error
	if result.Outbound, err = s.generateRoute(ctx, req.Departure, req.Arrival, req.DepartureDate); err != nil {
		return nil, err
	}
	if req.RoundTrip {
		if result.Return, err = s.generateRoute(ctx, req.Arrival, req.Departure, req.ReturnDate); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *TripService) ensureEmpty(ctx context.Context, departure, arrival, date string) error {
	countCtx, cancel := context.WithTimeout(ctx, s.trips.timeout)
	defer cancel()
	n, err := s.trips.repo.CountTrips(countCtx, departure, arrival, date)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %s -> %s on %s", ErrTripsExist, departure, arrival, date)
	}
	return nil
}

func (s *TripService) findTrips(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	findCtx, cancel := context.WithTimeout(ctx, s.trips.timeout)
	defer cancel()
	return s.trips.repo.FindTrips(findCtx, departure, arrival, date)
}

func (s *TripService) generateRoute(ctx context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	trips := s.generateTrips(departure, arrival, date)

	insertCtx, cancel := context.WithTimeout(ctx, s.trips.timeout)
	defer cancel()
	if err := s.trips.repo.InsertTrips(insertCtx, trips); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, departure, arrival, date); err != nil {
		s.log.WarnContext(ctx, "cache invalidate error", "error", err)
	}
	s.log.InfoContext(ctx, "generated trips", "departure", departure, "arrival", arrival, "date", date, "count", len(trips))
	return trips, nil
}

func (s *TripService) generateTrips(departure, arrival, date string) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := minGeneratedTrips + s.rnd.Intn(maxGeneratedTrips-minGeneratedTrips+1)
	trips := make([]domain.Trip, n)
	for i := range trips {
		trips[i] = domain.Trip{
			TrainRef:  fmt.Sprintf("TR%d", s.rnd.Intn(1000)),
			Departure: departure,
			Arrival:   arrival,
			Date:      date,
			Time:      fmt.Sprintf("%02d:%02d", s.rnd.Intn(24), s.rnd.Intn(60)),
			Length:    minTripLength + s.rnd.Intn(maxTripLength-minTripLength+1),
			Price:     decimal.NewFromInt(int64(minTripPrice + s.rnd.Intn(maxTripPrice-minTripPrice+1))),
		}
	}
	sortByPrice(trips)
	return trips
}

func sortByPrice(trips []domain.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		if !trips[i].Price.Equal(trips[j].Price) {
			return trips[i].Price.LessThan(trips[j].Price)
		}
		return trips[i].Time < trips[j].Time
	})
}

func validateRoute(departure, arrival, date, dateField string) error {
	var fields []domain.FieldError
	if strings.TrimSpace(departure) == "" {
		fields = append(fields, domain.FieldError{Field: "departure", Message: "departure is required"})
	}
	if strings.TrimSpace(arrival) == "" {
		fields = append(fields, domain.FieldError{Field: "arrival", Message: "arrival is required"})
	}
	if len(fields) == 0 && departure == arrival {
		fields = append(fields, domain.FieldError{Field: "arrival", Message: "arrival must differ from departure"})
	}
	if len(fields) > 0 {
		return newValidationError(ErrInvalidTrip, fields...)
	}
	return validateDate(date, dateField)
}

func validateDate(date, field string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return newValidationError(ErrInvalidTrip, domain.FieldError{Field: field, Message: "date must be YYYY-MM-DD"})
	}
	return nil
}
