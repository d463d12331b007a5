package service

import (
	"context"

	"github.com/fjod/swiftrail/domain"
	"github.com/fjod/swiftrail/internal/mailer"
	"github.com/fjod/swiftrail/internal/render"
)

// deliver hands the confirmation to the transport exactly once.
func (s *CheckoutServiceImpl) deliver(ctx context.Context, run *checkoutRun) error {
	if err := run.advance(domain.CheckoutStatusDelivered); err != nil {
		return err
	}

	id, err := send(ctx, s.mail, run.request.Email, run.document)
	if err != nil {
		return &DeliveryError{OrderReference: run.orderRef, Err: err}
	}
	run.deliveryID = id
	return nil
}

func send(ctx context.Context, h *MailHandler, to string, doc render.Document) (string, error) {
	msg := mailer.Message{
		To:       to,
		Subject:  doc.Subject,
		TextBody: doc.Text,
		HTMLBody: doc.HTML,
	}
	if len(doc.PDF) > 0 {
		msg.Attachments = []mailer.Attachment{{
			Filename:    doc.PDFName,
			ContentType: "application/pdf",
			Data:        doc.PDF,
		}}
	}

	sendCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.transport.Send(sendCtx, msg)
}
