package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fjod/swiftrail/pkg/circuitbreaker"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SSL      bool
	Timeout  time.Duration
}

// SMTPTransport sends messages over SMTP. Consecutive failures open a
// breaker; while it is open Send fails without dialing the relay.
type SMTPTransport struct {
	from    string
	send    func(ctx context.Context, msg *mail.Msg) error
	breaker *circuitbreaker.Breaker[string]
	log     *slog.Logger
}

func NewSMTPTransport(cfg SMTPConfig, breakerCfg circuitbreaker.Config, log *slog.Logger) (*SMTPTransport, error) {
	var opts []mail.Option
	if cfg.Port > 0 {
		opts = append(opts, mail.WithPort(cfg.Port))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if cfg.SSL {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return newSMTPTransport(cfg.From, client.DialAndSendWithContext, breakerCfg, log), nil
}

func newSMTPTransport(from string, send func(ctx context.Context, msgs ...*mail.Msg) error, breakerCfg circuitbreaker.Config, log *slog.Logger) *SMTPTransport {
	t := &SMTPTransport{
		from: from,
		send: func(ctx context.Context, msg *mail.Msg) error { return send(ctx, msg) },
		log:  log,
	}
	t.breaker = circuitbreaker.New[string]("smtp", breakerCfg, func(name, from, to string) {
		log.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})
	return t
}

// Send returns the Message-ID it stamped on the message.
func (t *SMTPTransport) Send(ctx context.Context, m Message) (string, error) {
	msg, id, err := t.build(m)
	if err != nil {
		return "", err
	}

	deliveryID, err := t.breaker.Execute(func() (string, error) {
		if err := t.send(ctx, msg); err != nil {
			return "", err
		}
		return id, nil
	})
	if err != nil {
		return "", fmt.Errorf("smtp send to %s failed: %w", m.To, err)
	}

	t.log.InfoContext(ctx, "confirmation sent", "to", m.To, "message_id", deliveryID)
	return deliveryID, nil
}

func (t *SMTPTransport) build(m Message) (*mail.Msg, string, error) {
	if strings.TrimSpace(m.To) == "" {
		return nil, "", ErrNoRecipient
	}

	msg := mail.NewMsg()
	if err := msg.From(t.from); err != nil {
		return nil, "", fmt.Errorf("invalid sender %q: %w", t.from, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, "", fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.TextBody)
	if m.HTMLBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTMLBody)
	}
	for _, a := range m.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		err := msg.AttachReader(a.Filename, bytes.NewReader(a.Data), mail.WithFileContentType(mail.ContentType(ct)))
		if err != nil {
			return nil, "", fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}

	id := fmt.Sprintf("%s@%s", uuid.NewString(), senderDomain(t.from))
	msg.SetMessageIDWithValue(id)
	return msg, id, nil
}

func senderDomain(from string) string {
	from = strings.TrimSuffix(from, ">")
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return from[i+1:]
	}
	return "localhost"
}
