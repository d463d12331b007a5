package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/journey"
	"github.com/fjod/swiftrail/internal/pricing"
	"github.com/fjod/swiftrail/internal/repository"
)

// CartService edits a user's stored cart. Each change reads the cart, builds
// a new Cart value and writes it back whole, so concurrent edits of one cart
// resolve as last write wins.
type CartService struct {
	users *UserHandler
	log   *slog.Logger
}

func NewCartService(users *UserHandler, log *slog.Logger) *CartService {
	return &CartService{
		users: users,
		log:   log.With("component", "cart"),
	}
}

// GetCart returns an empty cart for unknown users.
func (s *CartService) GetCart(ctx context.Context, email string) (domain.Cart, error) {
	user, err := s.getUser(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	if user.Cart == nil {
		return domain.Cart{}, nil
	}
	return user.Cart, nil
}

// AddItem stores a new item, creating the user record on first use.
func (s *CartService) AddItem(ctx context.Context, email string, item domain.Command) (domain.Cart, error) {
	if err := validateItem(item); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	user, err := s.getUser(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		cart := domain.Cart{}.Add(item)
		createCtx, cancel := context.WithTimeout(ctx, s.users.timeout)
		defer cancel()
		if err := s.users.repo.CreateUser(createCtx, &domain.User{Email: email, Cart: cart}); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log.InfoContext(ctx, "user created on first cart item", "email", email)
		return cart, nil
	}
	if err != nil {
		return nil, err
	}

	return s.save(ctx, email, user.Cart.Add(item))
}

func (s *CartService) SetSeat(ctx context.Context, email string, index int, seat string) (domain.Cart, error) {
	parsed, err := domain.ParseSeat(seat)
	if err != nil {
		return nil, newValidationError(ErrMissingSeat, domain.FieldError{Field: "seat", Message: err.Error()})
	}
	return s.update(ctx, email, func(c domain.Cart) (domain.Cart, error) {
		return c.SetSeat(index, parsed)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, email string, index int) (domain.Cart, error) {
	return s.update(ctx, email, func(c domain.Cart) (domain.Cart, error) {
		return c.RemoveAt(index)
	})
}

func (s *CartService) RemoveOption(ctx context.Context, email string, index int, option domain.Option) (domain.Cart, error) {
	return s.update(ctx, email, func(c domain.Cart) (domain.Cart, error) {
		return c.RemoveOption(index, option)
	})
}

// Journeys groups the cart into outbound/return pairs for display.
func (s *CartService) Journeys(ctx context.Context, email string) ([]domain.JourneyView, error) {
	cart, err := s.GetCart(ctx, email)
	if err != nil {
		return nil, err
	}
	return journeyViews(journey.Pair(cart)), nil
}

// Summary prices every line of the cart.
func (s *CartService) Summary(ctx context.Context, email string) (*domain.CartSummary, error) {
	cart, err := s.GetCart(ctx, email)
	if err != nil {
		return nil, err
	}

	summary := &domain.CartSummary{
		Lines:    make([]domain.CartLine, len(cart)),
		Journeys: journeyViews(journey.Pair(cart)),
		Total:    pricing.CartTotal(cart),
	}
	for i, item := range cart {
		summary.Lines[i] = domain.CartLine{Index: i, Command: item, Price: pricing.CommandPrice(item)}
	}
	return summary, nil
}

func (s *CartService) update(ctx context.Context, email string, change func(domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	cart, err := change(user.Cart)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, email, cart)
}

func (s *CartService) save(ctx context.Context, email string, cart domain.Cart) (domain.Cart, error) {
	updateCtx, cancel := context.WithTimeout(ctx, s.users.timeout)
	defer cancel()
	email = strings.TrimSpace(email)
	if err := s.users.repo.UpdateCart(updateCtx, email, cart); err != nil {
		s.log.ErrorContext(ctx, "repo update cart error", "email", email, "error", err)
		return nil, err
	}
	return cart, nil
}

func (s *CartService) getUser(ctx context.Context, email string) (*domain.User, error) {
	getCtx, cancel := context.WithTimeout(ctx, s.users.timeout)
	defer cancel()
	return s.users.repo.GetUser(getCtx, strings.TrimSpace(email))
}

func validateItem(item domain.Command) error {
	var fields []domain.FieldError
	if item.Trip == nil {
		fields = append(fields, domain.FieldError{Field: "travel_info", Message: "trip is required"})
	} else {
		if strings.TrimSpace(item.Trip.Departure) == "" || strings.TrimSpace(item.Trip.Arrival) == "" {
			fields = append(fields, domain.FieldError{Field: "travel_info", Message: "departure and arrival are required"})
		}
		if item.Trip.Price.IsNegative() {
			fields = append(fields, domain.FieldError{Field: "travel_info.price", Message: "price must not be negative"})
		}
	}
	if len(fields) > 0 {
		return newValidationError(ErrInvalidTrip, fields...)
	}

	for _, o := range item.Options {
		if !o.Known() {
			return newValidationError(ErrUnknownOption, domain.FieldError{Field: "options", Message: fmt.Sprintf("unknown option %q", o)})
		}
	}
	if item.Seat != "" {
		if _, err := domain.ParseSeat(item.Seat); err != nil {
			return newValidationError(ErrMissingSeat, domain.FieldError{Field: "seat", Message: err.Error()})
		}
	}
	return nil
}

func journeyViews(journeys []journey.Journey) []domain.JourneyView {
	out := make([]domain.JourneyView, len(journeys))
	for i, j := range journeys {
		out[i] = domain.JourneyView{Outbound: j.Outbound, Return: j.Return}
	}
	return out
}
