package contact

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// EmailBody returns a templ.Component rendering m as the HTML notification
// body. Every field is escaped.
func EmailBody(m Message) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		name, email := html.EscapeString(m.Name), html.EscapeString(m.Email)
		buf.WriteString(`<!DOCTYPE html><html><body style="background:#f9fafb;font-family:sans-serif">`)
		buf.WriteString(`<div style="max-width:36rem;margin:0 auto;padding:2rem 1rem">`)
		buf.WriteString(`<div style="background:#fff;border-radius:8px;padding:1.5rem">`)
		buf.WriteString(`<h1 style="font-size:1.5rem;color:#111827">New Contact Form Message</h1><hr>`)
		fmt.Fprintf(&buf, `<p><strong>From:</strong></p><p>%s (%s)</p>`, name, email)
		fmt.Fprintf(&buf, `<p><strong>Subject:</strong></p><p>%s</p>`, html.EscapeString(m.Subject))
		fmt.Fprintf(&buf, `<p><strong>Message:</strong></p><div style="background:#f9fafb;padding:1rem;border-radius:6px"><p style="white-space:pre-wrap">%s</p></div>`,
			html.EscapeString(m.Message))
		fmt.Fprintf(&buf, `<hr><p style="font-size:.75rem;color:#6b7280;text-align:center">This message was sent by %s from your portfolio website.</p>`, name)
		buf.WriteString(`</div></div></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// TextBody renders the plain-text alternative of the notification.
func TextBody(m Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New Contact Form Message\n\n")
	fmt.Fprintf(&b, "From: %s (%s)\n", m.Name, m.Email)
	fmt.Fprintf(&b, "Subject: %s\n\n", m.Subject)
	b.WriteString(m.Message)
	fmt.Fprintf(&b, "\n\n--\nThis message was sent by %s from your portfolio website.\n", m.Name)
	return b.String()
}
