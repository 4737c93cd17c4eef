package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-directory/app/entity"
)

var (
	ErrMissingAPIKey          = errors.New("missing api key")
	ErrInvalidAPIKey          = errors.New("invalid api key")
	ErrExpiredAPIKey          = errors.New("api key expired")
	ErrQuotaExceeded          = errors.New("api quota exceeded")
	ErrTenantStoreUnavailable = errors.New("tenant store unavailable")
)

const tenantLookupTimeout = 5 * time.Second

type TenantRepository interface {
	FindByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error)
	IncrementUsage(ctx context.Context, apiKey string, n int64) error
}

type TenantAuthService interface {
	Authenticate(ctx context.Context, apiKey string) (*entity.Tenant, error)
}

type tenantAuthService struct {
	tenantRepo TenantRepository
}

func NewTenantAuthService(tenantRepo TenantRepository) TenantAuthService {
	return &tenantAuthService{tenantRepo: tenantRepo}
}

// Authenticate validates an API key against the tenant store. Every call hits
// the store; nothing is cached, so quota and expiry changes apply on the very
// next request.
func (s *tenantAuthService) Authenticate(ctx context.Context, apiKey string) (*entity.Tenant, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if s.tenantRepo == nil {
		return nil, ErrTenantStoreUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, tenantLookupTimeout)
	defer cancel()

	tenant, err := s.tenantRepo.FindByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, ErrTenantStoreUnavailable
	}
	if tenant == nil || !tenant.Active {
		return nil, ErrInvalidAPIKey
	}

	if tenant.IsExpired(time.Now()) {
		return nil, ErrExpiredAPIKey
	}

	if tenant.IsLimitReached() {
		return nil, ErrQuotaExceeded
	}

	return tenant, nil
}
