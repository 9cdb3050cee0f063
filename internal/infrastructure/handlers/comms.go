package handlers

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/doeshing/voxa/internal/domain"
	"github.com/doeshing/voxa/internal/ports"
)

// CommsHandler sends email over SMTP with the configured account.
type CommsHandler struct {
	Config domain.Config
	Logger ports.Logger

	// send is swappable in tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewCommsHandler builds the handler.
func NewCommsHandler(cfg domain.Config, log ports.Logger) *CommsHandler {
	return &CommsHandler{Config: cfg, Logger: log, send: smtp.SendMail}
}

// SendEmail handles the send_email intent. The validator has already
// checked recipient shape and message presence.
func (h *CommsHandler) SendEmail(_ context.Context, cmd domain.Command) domain.ExecutionResult {
	if h.Config.Email.From == "" || h.Config.Email.Password == "" {
		return failed("Email account not configured", "missing email credentials")
	}

	recipient := strings.TrimSpace(cmd.StringEntity("recipient"))
	message := strings.TrimSpace(cmd.StringEntity("message"))
	subject := strings.TrimSpace(cmd.StringEntity("subject"))
	if subject == "" {
		subject = "Message from VOXA"
	}

	body := strings.Join([]string{
		"From: " + h.Config.Email.From,
		"To: " + recipient,
		"Subject: " + subject,
		"",
		message,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", h.Config.Email.SMTPHost, h.Config.Email.SMTPPort)
	auth := smtp.PlainAuth("", h.Config.Email.From, h.Config.Email.Password, h.Config.Email.SMTPHost)
	if err := h.send(addr, auth, h.Config.Email.From, []string{recipient}, []byte(body)); err != nil {
		return failed("I couldn't send the email", err.Error())
	}

	h.Logger.Info("email sent", map[string]interface{}{"to": recipient})
	return success(fmt.Sprintf("Email sent to %s", recipient), map[string]any{"recipient": recipient})
}
