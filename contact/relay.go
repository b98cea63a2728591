package contact

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// SubjectPrefix is prepended to the visitor's subject line.
const SubjectPrefix = "Portfolio Contact: "

// ErrDelivery wraps every failure reported by the email provider.
var ErrDelivery = errors.New("contact: delivery failed")

// Email is one outgoing notification.
type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers an Email and returns the provider's message ID.
type Sender interface {
	Send(ctx context.Context, e Email) (string, error)
}

// Relay turns validated contact messages into notifications for the site owner.
type Relay struct {
	sender Sender
	from   string
	to     []string
	log    zerolog.Logger
}

// NewRelay creates a Relay that sends from the given address to the given
// recipients.
func NewRelay(sender Sender, from string, to []string, log zerolog.Logger) *Relay {
	return &Relay{
		sender: sender,
		from:   from,
		to:     to,
		log:    log.With().Str("component", "contact").Logger(),
	}
}

// Send validates m and delivers it. Invalid messages return a
// *ValidationError without contacting the provider; provider failures wrap
// ErrDelivery.
func (r *Relay) Send(ctx context.Context, m Message) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	m = m.Normalize()

	var body bytes.Buffer
	if err := EmailBody(m).Render(ctx, &body); err != nil {
		return "", fmt.Errorf("render contact email: %w", err)
	}

	id, err := r.sender.Send(ctx, Email{
		From:    r.from,
		To:      r.to,
		ReplyTo: m.Email,
		Subject: SubjectPrefix + m.Subject,
		HTML:    body.String(),
		Text:    TextBody(m),
	})
	if err != nil {
		r.log.Error().Err(err).Str("reply_to", m.Email).Msg("contact email not sent")
		return "", fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	r.log.Info().Str("message_id", id).Msg("contact email sent")
	return id, nil
}
