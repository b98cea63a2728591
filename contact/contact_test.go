package contact

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []Email
	err  error
}

func (f *fakeSender) Send(ctx context.Context, e Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, e)
	return "msg_123", nil
}

func validMessage() Message {
	return Message{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "I liked your project.",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Message)
		want   string
	}{
		{"valid", func(m *Message) {}, ""},
		{"missing name", func(m *Message) { m.Name = "" }, msgRequired},
		{"whitespace subject", func(m *Message) { m.Subject = "   " }, msgRequired},
		{"missing message", func(m *Message) { m.Message = "" }, msgRequired},
		{"missing email beats bad email", func(m *Message) { m.Email = ""; m.Name = "" }, msgRequired},
		{"no at sign", func(m *Message) { m.Email = "ada.example.com" }, msgInvalidEmail},
		{"no dot in domain", func(m *Message) { m.Email = "ada@example" }, msgInvalidEmail},
		{"space in email", func(m *Message) { m.Email = "ada lovelace@example.com" }, msgInvalidEmail},
		{"padded email is trimmed", func(m *Message) { m.Email = "  ada@example.com " }, ""},
		{"long name", func(m *Message) { m.Name = strings.Repeat("a", MaxNameLen+1) }, msgTooLong},
		{"name at cap", func(m *Message) { m.Name = strings.Repeat("a", MaxNameLen) }, ""},
		{"long subject", func(m *Message) { m.Subject = strings.Repeat("s", MaxSubjectLen+1) }, msgTooLong},
		{"long message", func(m *Message) { m.Message = strings.Repeat("m", MaxMessageLen+1) }, msgTooLong},
		{"multibyte counted as characters", func(m *Message) { m.Name = strings.Repeat("ö", MaxNameLen) }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMessage()
			tt.mutate(&m)
			err := m.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.want, verr.Message)
		})
	}
}

func TestEmailBodyEscapesFields(t *testing.T) {
	m := validMessage()
	m.Name = `<script>alert("x")</script>`
	m.Message = "line one\n<b>bold</b>"

	var buf bytes.Buffer
	require.NoError(t, EmailBody(m).Render(context.Background(), &buf))
	out := buf.String()

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>bold</b>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "New Contact Form Message")
	assert.Contains(t, out, "(ada@example.com)")
	assert.Contains(t, out, "from your portfolio website.")
}

func TestTextBody(t *testing.T) {
	out := TextBody(validMessage())
	assert.Contains(t, out, "From: Ada Lovelace (ada@example.com)")
	assert.Contains(t, out, "Subject: Hello")
	assert.Contains(t, out, "I liked your project.")
}

func TestRelaySend(t *testing.T) {
	sender := &fakeSender{}
	r := NewRelay(sender, "Portfolio Contact <noreply@example.com>", []string{"owner@example.com"}, zerolog.Nop())

	m := validMessage()
	m.Subject = "  Hello  "
	id, err := r.Send(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)

	require.Len(t, sender.sent, 1)
	e := sender.sent[0]
	assert.Equal(t, "Portfolio Contact <noreply@example.com>", e.From)
	assert.Equal(t, []string{"owner@example.com"}, e.To)
	assert.Equal(t, "ada@example.com", e.ReplyTo)
	assert.Equal(t, "Portfolio Contact: Hello", e.Subject)
	assert.Contains(t, e.HTML, "I liked your project.")
	assert.Contains(t, e.Text, "I liked your project.")
}

func TestRelayRejectsInvalidWithoutSending(t *testing.T) {
	sender := &fakeSender{}
	r := NewRelay(sender, "from@example.com", []string{"to@example.com"}, zerolog.Nop())

	m := validMessage()
	m.Email = "nope"
	_, err := r.Send(context.Background(), m)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, msgInvalidEmail, verr.Message)
	assert.Empty(t, sender.sent)
}

func TestRelayWrapsProviderFailure(t *testing.T) {
	providerErr := errors.New("rate limit exceeded")
	r := NewRelay(&fakeSender{err: providerErr}, "from@example.com", []string{"to@example.com"}, zerolog.Nop())

	_, err := r.Send(context.Background(), validMessage())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.ErrorIs(t, err, providerErr)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}
