package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	httpdto "github.com/vibast-solutions/ms-go-directory/app/dto/http"
	"github.com/vibast-solutions/ms-go-directory/app/service"
)

const ContextKeyTenant = "tenant"

type APIKeyMiddleware struct {
	authService service.TenantAuthService
	development bool
}

func NewAPIKeyMiddleware(authService service.TenantAuthService, development bool) *APIKeyMiddleware {
	return &APIKeyMiddleware{authService: authService, development: development}
}

// RequireAPIKey authenticates the x-api-key header against the tenant store
// and stores the tenant in the request context. Every request re-authenticates;
// rejection order is missing key, store fault, invalid/expired key, quota.
func (m *APIKeyMiddleware) RequireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Let CORS preflight pass.
		if c.Request().Method == http.MethodOptions {
			return next(c)
		}

		apiKey := c.Request().Header.Get("x-api-key")

		tenant, err := m.authService.Authenticate(c.Request().Context(), apiKey)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrMissingAPIKey):
				return c.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "API key required"})
			case errors.Is(err, service.ErrInvalidAPIKey):
				logrus.Debug("Rejected invalid api key")
				return c.JSON(http.StatusForbidden, httpdto.ErrorResponse{Error: "invalid API key"})
			case errors.Is(err, service.ErrExpiredAPIKey):
				return c.JSON(http.StatusForbidden, httpdto.ErrorResponse{Error: "API key expired"})
			case errors.Is(err, service.ErrQuotaExceeded):
				return c.JSON(http.StatusTooManyRequests, httpdto.ErrorResponse{Error: "API quota exceeded"})
			case errors.Is(err, service.ErrTenantStoreUnavailable):
				logrus.WithError(err).Error("Tenant store unavailable")
				return c.JSON(http.StatusServiceUnavailable, httpdto.ErrorResponse{Error: "service unavailable"})
			default:
				logrus.WithError(err).Error("API key authentication failed")
				message := "internal server error"
				if m.development {
					message = err.Error()
				}
				return c.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: message})
			}
		}

		c.Set(ContextKeyTenant, tenant)
		return next(c)
	}
}
