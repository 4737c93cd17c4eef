package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-directory/config"
)

var ErrSendFailed = errors.New("failed to send contact mail")

type ContactMessage struct {
	ID      string
	Name    string
	Company string
	Email   string
	Message string
}

type MailSender interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

type postmarkMailer struct {
	client *postmark.Client
	cfg    config.MailConfig
}

// NewMailSender selects the mail backend from configuration. Without a
// Postmark server token the dev sender is used, which logs submissions
// instead of relaying them.
func NewMailSender(cfg config.MailConfig) MailSender {
	if cfg.PostmarkServerToken == "" {
		return &logMailer{}
	}
	return &postmarkMailer{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		cfg:    cfg,
	}
}

func (m *postmarkMailer) SendContact(ctx context.Context, msg ContactMessage) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.cfg.FromEmail,
		To:       m.cfg.ToEmail,
		ReplyTo:  msg.Email,
		Subject:  fmt.Sprintf("Contact request from %s", msg.Name),
		TextBody: formatContactBody(msg),
		Tag:      "contact-form",
	})
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(ErrSendFailed, fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message))
	}
	return nil
}

func formatContactBody(msg ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Submission: %s\n", msg.ID)
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	if msg.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", msg.Company)
	}
	fmt.Fprintf(&b, "Email: %s\n\n", msg.Email)
	b.WriteString(msg.Message)
	return b.String()
}

// logMailer is the development stand-in for the mail relay.
type logMailer struct{}

func (m *logMailer) SendContact(_ context.Context, msg ContactMessage) error {
	logrus.WithFields(logrus.Fields{
		"submission": msg.ID,
		"name":       msg.Name,
		"email":      msg.Email,
	}).Info("Contact mail (dev sender, not relayed)")
	return nil
}
