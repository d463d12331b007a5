package service

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/fjod/swiftrail/domain"
)

func (s *CheckoutServiceImpl) validate(request *domain.CheckoutRequest, now time.Time) error {
	if request == nil || len(request.Items) == 0 {
		return newValidationError(ErrEmptyCart, domain.FieldError{Field: "items", Message: "cart is empty"})
	}

	if err := validateEmail(request.Email); err != nil {
		return err
	}

	var seats []domain.FieldError
	for i, item := range request.Items {
		if _, err := domain.ParseSeat(item.Seat); err != nil {
			seats = append(seats, domain.FieldError{
				Field:   fmt.Sprintf("items[%d].seat", i),
				Message: err.Error(),
			})
		}
	}
	if len(seats) > 0 {
		return newValidationError(ErrMissingSeat, seats...)
	}

	if request.Payment != nil {
		if fields := request.Payment.Validate(now); len(fields) > 0 {
			return newValidationError(ErrInvalidPayment, fields...)
		}
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return newValidationError(ErrInvalidEmail, domain.FieldError{Field: "email", Message: "email address is malformed"})
	}
	return nil
}
