package http

import (
	"context"

	"github.com/fjod/swiftrail/domain"
)

// --- Mocks ---

type TripServiceMock struct {
	trips  []domain.Trip
	result *domain.GenerateTripsResult
	err    error

	lastQuery [3]string
}

func (m *TripServiceMock) Search(_ context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	m.lastQuery = [3]string{departure, arrival, date}
	if m.err != nil {
		return nil, m.err
	}
	return m.trips, nil
}

func (m *TripServiceMock) Generate(context.Context, domain.GenerateTripsRequest) (*domain.GenerateTripsResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type CartServiceMock struct {
	cart     domain.Cart
	summary  *domain.CartSummary
	journeys []domain.JourneyView
	err      error

	lastEmail  string
	lastIndex  int
	lastSeat   string
	lastOption domain.Option
	lastItem   domain.Command
}

func (m *CartServiceMock) GetCart(_ context.Context, email string) (domain.Cart, error) {
	m.lastEmail = email
	return m.cart, m.err
}

func (m *CartServiceMock) AddItem(_ context.Context, email string, item domain.Command) (domain.Cart, error) {
	m.lastEmail, m.lastItem = email, item
	return m.cart, m.err
}

func (m *CartServiceMock) SetSeat(_ context.Context, email string, index int, seat string) (domain.Cart, error) {
	m.lastEmail, m.lastIndex, m.lastSeat = email, index, seat
	return m.cart, m.err
}

func (m *CartServiceMock) RemoveItem(_ context.Context, email string, index int) (domain.Cart, error) {
	m.lastEmail, m.lastIndex = email, index
	return m.cart, m.err
}

func (m *CartServiceMock) RemoveOption(_ context.Context, email string, index int, option domain.Option) (domain.Cart, error) {
	m.lastEmail, m.lastIndex, m.lastOption = email, index, option
	return m.cart, m.err
}

func (m *CartServiceMock) Journeys(_ context.Context, email string) ([]domain.JourneyView, error) {
	m.lastEmail = email
	return m.journeys, m.err
}

func (m *CartServiceMock) Summary(_ context.Context, email string) (*domain.CartSummary, error) {
	m.lastEmail = email
	return m.summary, m.err
}

type CheckoutServiceMock struct {
	outcome *domain.CheckoutOutcome
	err     error

	lastRequest *domain.CheckoutRequest
}

func (m *CheckoutServiceMock) Checkout(_ context.Context, request *domain.CheckoutRequest) (*domain.CheckoutOutcome, error) {
	m.lastRequest = request
	return m.outcome, m.err
}

type OrderServiceMock struct {
	orders     []domain.Order
	deliveryID string
	err        error

	lastEmail string
	lastRef   string
}

func (m *OrderServiceMock) OrderHistory(_ context.Context, email string) ([]domain.Order, error) {
	m.lastEmail = email
	return m.orders, m.err
}

func (m *OrderServiceMock) ResendConfirmation(_ context.Context, orderRef string) (string, error) {
	m.lastRef = orderRef
	return m.deliveryID, m.err
}
