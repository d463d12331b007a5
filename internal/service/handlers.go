package service

import (
	"time"

	"github.com/fjod/swiftrail/internal/mailer"
	"github.com/fjod/swiftrail/internal/repository"
)

type OrderHandler struct {
	repo    repository.OrderRepository
	timeout time.Duration
}

func NewOrderHandler(repo repository.OrderRepository, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		repo:    repo,
		timeout: timeout,
	}
}

type UserHandler struct {
	repo    repository.UserRepository
	timeout time.Duration
}

func NewUserHandler(repo repository.UserRepository, timeout time.Duration) *UserHandler {
	return &UserHandler{
		repo:    repo,
		timeout: timeout,
	}
}

type TripHandler struct {
	repo    repository.TripRepository
	timeout time.Duration
}

func NewTripHandler(repo repository.TripRepository, timeout time.Duration) *TripHandler {
	return &TripHandler{
		repo:    repo,
		timeout: timeout,
	}
}

type MailHandler struct {
	transport mailer.Transport
	timeout   time.Duration
}

func NewMailHandler(transport mailer.Transport, timeout time.Duration) *MailHandler {
	return &MailHandler{
		transport: transport,
		timeout:   timeout,
	}
}

type EventHandler struct {
	publisher EventPublisher
	timeout   time.Duration
}

func NewEventHandler(publisher EventPublisher, timeout time.Duration) *EventHandler {
	return &EventHandler{
		publisher: publisher,
		timeout:   timeout,
	}
}
