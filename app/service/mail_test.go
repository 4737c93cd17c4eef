package service

import (
	"context"
	"strings"
	"testing"

	"github.com/vibast-solutions/ms-go-directory/config"
)

func TestNewMailSender_WithoutTokenUsesDevSender(t *testing.T) {
	sender := NewMailSender(config.MailConfig{})

	if _, ok := sender.(*logMailer); !ok {
		t.Fatalf("expected dev sender, got %T", sender)
	}
	if err := sender.SendContact(context.Background(), ContactMessage{
		ID:    "sub-1",
		Name:  "Jane",
		Email: "jane@example.com",
	}); err != nil {
		t.Fatalf("dev sender must not fail: %v", err)
	}
}

func TestNewMailSender_WithTokenUsesPostmark(t *testing.T) {
	sender := NewMailSender(config.MailConfig{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		FromEmail:            "noreply@example.com",
		ToEmail:              "office@example.com",
	})

	if _, ok := sender.(*postmarkMailer); !ok {
		t.Fatalf("expected postmark mailer, got %T", sender)
	}
}

func TestFormatContactBody(t *testing.T) {
	body := formatContactBody(ContactMessage{
		ID:      "sub-1",
		Name:    "Jane Doe",
		Company: "Doe GmbH",
		Email:   "jane@example.com",
		Message: "Please call me back.",
	})

	for _, want := range []string{"sub-1", "Jane Doe", "Doe GmbH", "jane@example.com", "Please call me back."} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}

	body = formatContactBody(ContactMessage{ID: "sub-2", Name: "Jane", Email: "jane@example.com"})
	if strings.Contains(body, "Company:") {
		t.Fatalf("empty company must be omitted:\n%s", body)
	}
}
