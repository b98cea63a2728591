package portfolio

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/contact"
)

const (
	contactSent     = "Your message has been sent successfully!"
	contactFailed   = "An error occurred while sending the email."
	contactTooMany  = "Too many messages. Please try again later."
	contactBadInput = "Invalid request body."
)

func (a *App) handleAPIContact(c echo.Context) error {
	if !a.contactLimiter.Allow(c.RealIP()) {
		return jsonError(c, http.StatusTooManyRequests, contactTooMany)
	}
	var msg contact.Message
	if err := c.Bind(&msg); err != nil {
		return jsonError(c, http.StatusBadRequest, contactBadInput)
	}
	if _, err := a.Relay.Send(c.Request().Context(), msg); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			return jsonError(c, http.StatusBadRequest, verr.Message)
		}
		return jsonError(c, http.StatusInternalServerError, contactFailed)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": contactSent})
}

// handleContactForm serves the no-JavaScript form post: the outcome is stored
// as a flash message and the visitor is sent back to the home page contact
// section, the one page that shows it.
func (a *App) handleContactForm(c echo.Context) error {
	const back = "/#contact"
	if !a.contactLimiter.Allow(c.RealIP()) {
		_ = setFlash(c, Flash{Error: contactTooMany})
		return c.Redirect(http.StatusSeeOther, back)
	}
	msg := contact.Message{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Subject: c.FormValue("subject"),
		Message: c.FormValue("message"),
	}
	var f Flash
	if _, err := a.Relay.Send(c.Request().Context(), msg); err != nil {
		var verr *contact.ValidationError
		if errors.As(err, &verr) {
			f.Error = verr.Message
		} else {
			f.Error = contactFailed
		}
	} else {
		f.Success = contactSent
	}
	if err := setFlash(c, f); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, back)
}
