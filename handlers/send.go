package handlers

import (
	"net/http"

	"github.com/dmitrymomot/mailpreview"
	"github.com/dmitrymomot/mailpreview/middlewares"
	"github.com/dmitrymomot/mailpreview/pkg/relay"
	"github.com/dmitrymomot/mailpreview/views"
)

// SendRequest is the body of POST /send-email.
type SendRequest struct {
	HTML           string `json:"html"           form:"html"`
	RecipientEmail string `json:"recipientEmail" form:"recipientEmail"`
	Subject        string `json:"subject"        form:"subject"`
	SenderEmail    string `json:"senderEmail"    form:"senderEmail"`
}

// SendResponse is the success body of POST /send-email.
type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// Send relays rendered HTML to a real inbox.
type Send struct {
	relay *relay.Service
}

// NewSend creates the send handler.
func NewSend(svc *relay.Service) *Send {
	return &Send{relay: svc}
}

// Routes declares the send route.
func (h *Send) Routes(r mailpreview.Router) {
	r.POST("/send-email", h.send)
}

// send accepts JSON from API clients and the send form from the editor.
// Failures are returned as errors and mapped by ErrorHandler.
func (h *Send) send(c mailpreview.Context) error {
	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return c.Error(http.StatusBadRequest, "Invalid request body", mailpreview.WithErrorCause(err))
	}

	out, err := h.relay.Send(middlewares.TimeoutContext(c), relay.Request{
		HTML:      req.HTML,
		Recipient: req.RecipientEmail,
		Subject:   req.Subject,
		Sender:    req.SenderEmail,
	})
	if err != nil {
		return err
	}

	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.SendResult(views.SendStatus{MessageID: out.MessageID}))
	}
	return c.JSON(http.StatusOK, SendResponse{Success: true, MessageID: out.MessageID})
}
