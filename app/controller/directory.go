package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	httpdto "github.com/vibast-solutions/ms-go-directory/app/dto/http"
	"github.com/vibast-solutions/ms-go-directory/app/entity"
	"github.com/vibast-solutions/ms-go-directory/app/middleware"
	"github.com/vibast-solutions/ms-go-directory/app/service"
)

type DirectoryController struct {
	directoryService service.DirectoryService
	usageService     service.UsageService
}

func NewDirectoryController(directoryService service.DirectoryService, usageService service.UsageService) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
		usageService:     usageService,
	}
}

func (c *DirectoryController) Workshops(ctx echo.Context) error {
	req := httpdto.NewWorkshopListRequestFromContext(ctx)

	total, page := c.directoryService.Workshops(service.WorkshopQuery{
		Search:  req.Search,
		City:    req.City,
		ZipCode: req.ZipCode,
		Concept: req.Concept,
		Limit:   req.LimitValue(),
		Offset:  req.OffsetValue(),
	})

	c.recordUsage(ctx, len(page))

	return ctx.JSON(http.StatusOK, httpdto.ListResponse{
		Metadata: httpdto.ListMetadata{
			Total:    total,
			Returned: len(page),
			Offset:   service.ClampOffset(req.OffsetValue()),
			Limit:    service.ClampLimit(req.LimitValue()),
			Filters:  req.Filters(),
		},
		Data: page,
	})
}

func (c *DirectoryController) ManagementChanges(ctx echo.Context) error {
	req := httpdto.NewManagementChangeListRequestFromContext(ctx)

	total, page := c.directoryService.ManagementChanges(service.ManagementChangeQuery{
		Search:   req.Search,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Limit:    req.LimitValue(),
		Offset:   req.OffsetValue(),
	})

	c.recordUsage(ctx, len(page))

	return ctx.JSON(http.StatusOK, httpdto.ListResponse{
		Metadata: httpdto.ListMetadata{
			Total:    total,
			Returned: len(page),
			Offset:   service.ClampOffset(req.OffsetValue()),
			Limit:    service.ClampLimit(req.LimitValue()),
			Filters:  req.Filters(),
		},
		Data: page,
	})
}

// recordUsage charges the returned record count against the tenant's quota.
// Best effort: the response does not wait for the increment.
func (c *DirectoryController) recordUsage(ctx echo.Context, returned int) {
	if tenant := tenantFromContext(ctx); tenant != nil {
		c.usageService.RecordAsync(tenant.APIKey, returned)
	}
}

func tenantFromContext(ctx echo.Context) *entity.Tenant {
	tenant, _ := ctx.Get(middleware.ContextKeyTenant).(*entity.Tenant)
	return tenant
}
