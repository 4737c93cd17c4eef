package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	httpdto "github.com/vibast-solutions/ms-go-directory/app/dto/http"
	"github.com/vibast-solutions/ms-go-directory/app/service"
)

const contactSendTimeout = 10 * time.Second

type ContactController struct {
	mailSender service.MailSender
}

func NewContactController(mailSender service.MailSender) *ContactController {
	return &ContactController{mailSender: mailSender}
}

// Submit relays a contact-form submission to the configured mailbox.
// The endpoint is public; no API key is required.
func (c *ContactController) Submit(ctx echo.Context) error {
	req, err := httpdto.NewContactRequestFromContext(ctx)
	if err != nil {
		logrus.WithError(err).Debug("Failed to bind contact request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ContactErrorResponse{OK: false, Error: "Missing fields"})
	}

	if err = req.Validate(); err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ContactErrorResponse{OK: false, Error: "Missing fields"})
	}

	msg := service.ContactMessage{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Message: req.Message,
	}

	sendCtx, cancel := context.WithTimeout(ctx.Request().Context(), contactSendTimeout)
	defer cancel()

	if err = c.mailSender.SendContact(sendCtx, msg); err != nil {
		logrus.WithError(err).WithField("submission", msg.ID).Error("Failed to relay contact mail")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ContactErrorResponse{OK: false, Error: "Send failed"})
	}

	return ctx.JSON(http.StatusOK, httpdto.ContactResponse{OK: true, ID: msg.ID})
}
