package contact

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers notifications through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a ResendSender authenticated with apiKey.
func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, e Email) (string, error) {
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    e.From,
		To:      e.To,
		ReplyTo: e.ReplyTo,
		Subject: e.Subject,
		Html:    e.HTML,
		Text:    e.Text,
	})
	if err != nil {
		return "", err
	}
	return resp.Id, nil
}
