package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3}$`)
)

// PaymentForm is the card form submitted with a checkout. It is only checked
// for format; nothing is charged.
type PaymentForm struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"` // MM/YY
	CVV        string `json:"cvv"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate returns one FieldError per invalid field, in form order.
func (p PaymentForm) Validate(now time.Time) []FieldError {
	var errs []FieldError
	if !cardNumberRe.MatchString(p.CardNumber) {
		errs = append(errs, FieldError{"card_number", "card number must be 16 digits"})
	}
	if !validExpiry(p.ExpiryDate, now) {
		errs = append(errs, FieldError{"expiry_date", "expiry date must be MM/YY and not in the past"})
	}
	if !cvvRe.MatchString(p.CVV) {
		errs = append(errs, FieldError{"cvv", "cvv must be 3 digits"})
	}
	return errs
}

func validExpiry(expiry string, now time.Time) bool {
	if !expiryRe.MatchString(expiry) {
		return false
	}
	mm, yy, _ := strings.Cut(expiry, "/")
	month, _ := strconv.Atoi(mm)
	year, _ := strconv.Atoi(yy)

	currentYear := now.Year() % 100
	currentMonth := int(now.Month())
	if year < currentYear {
		return false
	}
	return !(year == currentYear && month < currentMonth)
}
