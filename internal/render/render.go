// Package render turns an issued order into the confirmation email: a
// subject, a plain-text body, an HTML body and a PDF copy of the tickets.
// It only formats what it is given; prices arrive precomputed.
package render

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/journey"
	"github.com/fjod/swiftrail/internal/pricing"
	"github.com/shopspring/decimal"
)

type OptionLine struct {
	Code  domain.Option
	Label string
	Price decimal.Decimal
}

// Ticket is one line of the confirmation. Unavailable tickets carry only
// their number and seat.
type Ticket struct {
	Number       int
	Reference    string
	BoardingCode string
	TrainRef     string
	Departure    string
	Arrival      string
	Date         string
	Time         string
	ArrivalTime  string
	Duration     string
	Seat         string
	Options      []OptionLine
	Price        decimal.Decimal
	Unavailable  bool
}

type Confirmation struct {
	OrderReference string
	Email          string
	PurchasedAt    time.Time
	Tickets        []Ticket
	// Journeys index into Tickets. Empty means every ticket stands alone.
	Journeys []journey.Journey
	Total    decimal.Decimal
	Degraded bool
}

type Document struct {
	Subject string
	Text    string
	HTML    string
	PDF     []byte
	PDFName string
}

type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() *Renderer {
	funcs := map[string]any{
		"money":         pricing.Format,
		"optionSummary": optionSummary,
		"stamp":         func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
	}
	return &Renderer{
		html: htmltemplate.Must(htmltemplate.New("confirmation.html").Funcs(funcs).Parse(htmlTemplate)),
		text: texttemplate.Must(texttemplate.New("confirmation.txt").Funcs(funcs).Parse(textTemplate)),
	}
}

type leg struct {
	Label string
	Ticket
}

type group struct {
	Title string
	Legs  []leg
}

type view struct {
	Confirmation
	Groups []group
}

func (r *Renderer) Render(c Confirmation) (Document, error) {
	v := view{Confirmation: c, Groups: groups(c)}

	var text, html bytes.Buffer
	if err := r.text.Execute(&text, v); err != nil {
		return Document{}, fmt.Errorf("failed to render text body: %w", err)
	}
	if err := r.html.Execute(&html, v); err != nil {
		return Document{}, fmt.Errorf("failed to render html body: %w", err)
	}
	pdf, err := renderPDF(v)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Subject: fmt.Sprintf("Your SwiftRail booking %s", c.OrderReference),
		Text:    text.String(),
		HTML:    html.String(),
		PDF:     pdf,
		PDFName: fmt.Sprintf("%s.pdf", c.OrderReference),
	}, nil
}

func groups(c Confirmation) []group {
	journeys := c.Journeys
	if len(journeys) == 0 {
		journeys = make([]journey.Journey, len(c.Tickets))
		for i := range c.Tickets {
			journeys[i] = journey.Journey{Outbound: i, Return: journey.NoReturn}
		}
	}

	out := make([]group, 0, len(journeys))
	for n, j := range journeys {
		if j.Outbound < 0 || j.Outbound >= len(c.Tickets) {
			continue
		}
		g := group{Title: fmt.Sprintf("Journey %d", n+1)}
		if j.RoundTrip() && j.Return < len(c.Tickets) {
			g.Title += " (round trip)"
			g.Legs = []leg{
				{Label: "Outbound", Ticket: c.Tickets[j.Outbound]},
				{Label: "Return", Ticket: c.Tickets[j.Return]},
			}
		} else {
			g.Legs = []leg{{Label: "One way", Ticket: c.Tickets[j.Outbound]}}
		}
		out = append(out, g)
	}
	return out
}

func optionSummary(options []OptionLine) string {
	if len(options) == 0 {
		return "none"
	}
	parts := make([]string, len(options))
	for i, o := range options {
		parts[i] = fmt.Sprintf("%s (+%s)", o.Label, pricing.Format(o.Price))
	}
	return strings.Join(parts, ", ")
}
