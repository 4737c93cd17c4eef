package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-directory/app/dto"
	"github.com/vibast-solutions/ms-go-directory/app/entity"
)

const usageUpdateTimeout = 2 * time.Second

type UsageService interface {
	// RecordAsync adds count to the tenant's usage counter without blocking
	// the caller. Failures are logged and dropped, never retried; a missed
	// increment must not turn a served query into an error.
	RecordAsync(apiKey string, count int)
	Status(tenant *entity.Tenant) dto.UsageStatus
}

type usageService struct {
	tenantRepo TenantRepository
}

func NewUsageService(tenantRepo TenantRepository) UsageService {
	return &usageService{tenantRepo: tenantRepo}
}

func (s *usageService) RecordAsync(apiKey string, count int) {
	if apiKey == "" || count <= 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), usageUpdateTimeout)
		defer cancel()

		if err := s.tenantRepo.IncrementUsage(ctx, apiKey, int64(count)); err != nil {
			logrus.WithError(err).WithField("count", count).Error("Failed to record api usage")
		}
	}()
}

// Status derives the usage report from the tenant record fetched during
// authentication; it never goes back to the store.
func (s *usageService) Status(tenant *entity.Tenant) dto.UsageStatus {
	status := dto.UsageStatus{
		Current:        tenant.APIUsage,
		IsExpired:      tenant.IsExpired(time.Now()),
		IsLimitReached: tenant.IsLimitReached(),
	}

	if tenant.APILimit.Valid {
		limit := tenant.APILimit.Int64
		remaining := limit - tenant.APIUsage
		if remaining < 0 {
			remaining = 0
		}
		status.Limit = &limit
		status.Remaining = &remaining
	}

	if tenant.APIValidTo.Valid {
		validTo := tenant.APIValidTo.Time
		status.ValidTo = &validTo
	}

	return status
}
