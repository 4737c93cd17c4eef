package controller_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vibast-solutions/ms-go-directory/app/controller"
	httpdto "github.com/vibast-solutions/ms-go-directory/app/dto/http"
	"github.com/vibast-solutions/ms-go-directory/app/service"

	"github.com/labstack/echo/v4"
)

type fakeMailSender struct {
	sent []service.ContactMessage
	err  error
}

func (f *fakeMailSender) SendContact(_ context.Context, msg service.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newContactContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestContactSubmit_Success(t *testing.T) {
	mailer := &fakeMailSender{}
	contactController := controller.NewContactController(mailer)

	ctx, rec := newContactContext(t, `{"name":"Jane Doe","company":"Doe GmbH","email":"jane@example.com","message":"Please call me back."}`)

	if err := contactController.Submit(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp httpdto.ContactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if !resp.OK || resp.ID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.Name != "Jane Doe" || msg.Email != "jane@example.com" || msg.ID != resp.ID {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestContactSubmit_MissingFields(t *testing.T) {
	mailer := &fakeMailSender{}
	contactController := controller.NewContactController(mailer)

	for _, body := range []string{
		`{"company":"Doe GmbH","email":"jane@example.com","message":"hi"}`,
		`{"name":"Jane Doe","message":"hi"}`,
		`{"name":"  ","email":"jane@example.com"}`,
	} {
		ctx, rec := newContactContext(t, body)

		if err := contactController.Submit(ctx); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", body, rec.Code)
		}

		var resp httpdto.ContactErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response failed: %v", err)
		}
		if resp.OK || resp.Error != "Missing fields" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	}

	if len(mailer.sent) != 0 {
		t.Fatalf("no mail expected for rejected submissions, got %d", len(mailer.sent))
	}
}

func TestContactSubmit_RelayFailure(t *testing.T) {
	mailer := &fakeMailSender{err: errors.New("relay down")}
	contactController := controller.NewContactController(mailer)

	ctx, rec := newContactContext(t, `{"name":"Jane Doe","email":"jane@example.com","message":"hi"}`)

	if err := contactController.Submit(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var resp httpdto.ContactErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.OK || resp.Error != "Send failed" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestContactSubmit_MalformedBody(t *testing.T) {
	contactController := controller.NewContactController(&fakeMailSender{})

	ctx, rec := newContactContext(t, `{"name": `)

	if err := contactController.Submit(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
