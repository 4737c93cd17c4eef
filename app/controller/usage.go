package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	httpdto "github.com/vibast-solutions/ms-go-directory/app/dto/http"
	"github.com/vibast-solutions/ms-go-directory/app/service"
)

type UsageController struct {
	usageService service.UsageService
}

func NewUsageController(usageService service.UsageService) *UsageController {
	return &UsageController{usageService: usageService}
}

// Status reports the tenant's quota standing from the record already fetched
// during authentication; no extra store round-trip.
func (c *UsageController) Status(ctx echo.Context) error {
	tenant := tenantFromContext(ctx)
	if tenant == nil {
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "API key required"})
	}

	status := c.usageService.Status(tenant)

	return ctx.JSON(http.StatusOK, httpdto.UsageResponse{
		Usage: httpdto.UsageReport{
			Current:        status.Current,
			Limit:          status.Limit,
			Remaining:      status.Remaining,
			ValidTo:        status.ValidTo,
			IsExpired:      status.IsExpired,
			IsLimitReached: status.IsLimitReached,
		},
	})
}
