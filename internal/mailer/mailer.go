// Package mailer delivers rendered confirmations. A Transport sends one message
// and returns the identifier the delivery was recorded under; it never retries.
package mailer

import (
	"context"
	"errors"
)

var ErrNoRecipient = errors.New("message has no recipient")

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []Attachment
}

type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}
