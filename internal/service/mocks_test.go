package service

import (
	"context"
	"errors"
	"sync"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/cache"
	"github.com/fjod/swiftrail/internal/mailer"
	"github.com/fjod/swiftrail/internal/render"
	"github.com/fjod/swiftrail/internal/repository"
)

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	Orders      []domain.Order
	CountErr    error
	InsertErr   error
	FindErr     error
	CountCalls  int
	InsertCalls int
}

func (m *MockOrderRepository) InsertOrder(_ context.Context, order *domain.Order) error {
	m.InsertCalls++
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Orders = append(m.Orders, *order)
	return nil
}

func (m *MockOrderRepository) CountOrders(context.Context) (int64, error) {
	m.CountCalls++
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return int64(len(m.Orders)), nil
}

func (m *MockOrderRepository) FindOrdersByEmail(_ context.Context, email string) ([]domain.Order, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := []domain.Order{}
	for i := len(m.Orders) - 1; i >= 0; i-- {
		if m.Orders[i].Email == email {
			out = append(out, m.Orders[i])
		}
	}
	return out, nil
}

func (m *MockOrderRepository) FindOrderByReference(_ context.Context, reference string) (*domain.Order, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for i := range m.Orders {
		if m.Orders[i].Reference == reference {
			o := m.Orders[i]
			return &o, nil
		}
	}
	return nil, repository.ErrOrderNotFound
}

func (m *MockOrderRepository) calls() int {
	return m.CountCalls + m.InsertCalls
}

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	Users       map[string]*domain.User
	GetErr      error
	UpdateErr   error
	IssueErr    error
	IssueCalls  int
	UpdateCalls int
}

func newMockUsers(users ...*domain.User) *MockUserRepository {
	m := &MockUserRepository{Users: map[string]*domain.User{}}
	for _, u := range users {
		m.Users[u.Email] = u
	}
	return m
}

func (m *MockUserRepository) GetUser(_ context.Context, email string) (*domain.User, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	u, ok := m.Users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	copied.Cart = u.Cart.Clone()
	return &copied, nil
}

func (m *MockUserRepository) CreateUser(_ context.Context, user *domain.User) error {
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserRepository) UpdateCart(_ context.Context, email string, cart domain.Cart) error {
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	u, ok := m.Users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Cart = cart
	return nil
}

func (m *MockUserRepository) IssueCommands(_ context.Context, email string, cart domain.Cart, issued []domain.Command) error {
	m.IssueCalls++
	if m.IssueErr != nil {
		return m.IssueErr
	}
	u, ok := m.Users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Cart = cart
	u.Commands = append(u.Commands, issued...)
	return nil
}

// MockTripRepository implements repository.TripRepository for testing
type MockTripRepository struct {
	mu          sync.Mutex
	Trips       []domain.Trip
	FindErr     error
	InsertErr   error
	FindCalls   int
	InsertCalls int
}

func (m *MockTripRepository) FindTrips(_ context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := []domain.Trip{}
	for _, t := range m.Trips {
		if t.Departure == departure && t.Arrival == arrival && t.Date == date {
			out = append(out, t)
		}
	}
	sortByPrice(out)
	return out, nil
}

func (m *MockTripRepository) CountTrips(ctx context.Context, departure, arrival, date string) (int64, error) {
	trips, err := m.FindTrips(ctx, departure, arrival, date)
	return int64(len(trips)), err
}

func (m *MockTripRepository) InsertTrips(_ context.Context, trips []domain.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.Trips = append(m.Trips, trips...)
	return nil
}

// MockTripCache implements cache.TripCache for testing
type MockTripCache struct {
	mu      sync.Mutex
	Entries map[string][]domain.Trip
	GetErr  error
	Sets    int
}

func newMockCache() *MockTripCache {
	return &MockTripCache{Entries: map[string][]domain.Trip{}}
}

func (m *MockTripCache) Get(_ context.Context, departure, arrival, date string) ([]domain.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	trips, ok := m.Entries[departure+"|"+arrival+"|"+date]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return trips, nil
}

func (m *MockTripCache) Set(_ context.Context, departure, arrival, date string, trips []domain.Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.Entries[departure+"|"+arrival+"|"+date] = trips
	return nil
}

func (m *MockTripCache) Delete(_ context.Context, departure, arrival, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Entries, departure+"|"+arrival+"|"+date)
	return nil
}

// MockTransport implements mailer.Transport for testing
type MockTransport struct {
	Err  error
	Sent []mailer.Message
}

func (m *MockTransport) Send(_ context.Context, msg mailer.Message) (string, error) {
	m.Sent = append(m.Sent, msg)
	if m.Err != nil {
		return "", m.Err
	}
	return "msg-" + msg.Subject, nil
}

// MockPublisher implements EventPublisher for testing
type MockPublisher struct {
	Err       error
	Published []*domain.Order
}

func (m *MockPublisher) PublishOrderIssued(_ context.Context, order *domain.Order) error {
	m.Published = append(m.Published, order)
	return m.Err
}

type failingRenderer struct{}

func (failingRenderer) Render(render.Confirmation) (render.Document, error) {
	return render.Document{}, errors.New("template exploded")
}
