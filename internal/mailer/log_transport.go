package mailer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogTransport writes messages to the log instead of sending them. Used when
// no SMTP relay is configured.
type LogTransport struct {
	log *slog.Logger
}

func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Send(ctx context.Context, m Message) (string, error) {
	if m.To == "" {
		return "", ErrNoRecipient
	}
	id := "log-" + uuid.NewString()

	attachments := make([]string, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, a.Filename)
	}
	t.log.InfoContext(ctx, "confirmation not sent, smtp disabled",
		"to", m.To,
		"subject", m.Subject,
		"attachments", attachments,
		"delivery_id", id,
	)
	return id, nil
}
