// Package contact validates messages from the site's contact form and relays
// them to the owner's inbox through an email provider.
package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field length caps, in characters.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 254
	MaxSubjectLen = 200
	MaxMessageLen = 5000
)

// Validation messages shown to the visitor.
const (
	msgRequired     = "All fields are required."
	msgInvalidEmail = "Please enter a valid email address."
	msgTooLong      = "Message is too long."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

// ValidationError reports a submission the visitor must correct.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Normalize returns m with surrounding whitespace trimmed from every field.
func (m Message) Normalize() Message {
	return Message{
		Name:    strings.TrimSpace(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Subject: strings.TrimSpace(m.Subject),
		Message: strings.TrimSpace(m.Message),
	}
}

// Validate checks presence, then the email shape, then the length caps, and
// returns a *ValidationError for the first rule that fails.
func (m Message) Validate() error {
	m = m.Normalize()
	if m.Name == "" || m.Email == "" || m.Subject == "" || m.Message == "" {
		return &ValidationError{Message: msgRequired}
	}
	if !emailPattern.MatchString(m.Email) {
		return &ValidationError{Message: msgInvalidEmail}
	}
	if tooLong(m.Name, MaxNameLen) || tooLong(m.Email, MaxEmailLen) ||
		tooLong(m.Subject, MaxSubjectLen) || tooLong(m.Message, MaxMessageLen) {
		return &ValidationError{Message: msgTooLong}
	}
	return nil
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
