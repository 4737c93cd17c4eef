package middleware_test

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-directory/app/entity"
	"github.com/vibast-solutions/ms-go-directory/app/middleware"
	"github.com/vibast-solutions/ms-go-directory/app/repository"
	"github.com/vibast-solutions/ms-go-directory/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
)

const findTenantByAPIKeyQuery = `(?s)SELECT id, username, api_key, api_usage, api_limit, api_validto, active, created_at, updated_at\s+FROM tenants WHERE api_key = \?`

var tenantColumns = []string{
	"id",
	"username",
	"api_key",
	"api_usage",
	"api_limit",
	"api_validto",
	"active",
	"created_at",
	"updated_at",
}

func newAPIKeyMiddleware(t *testing.T) (*middleware.APIKeyMiddleware, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	tenantRepo := repository.NewTenantRepository(db)
	authService := service.NewTenantAuthService(tenantRepo)

	return middleware.NewAPIKeyMiddleware(authService, false), mock, func() { _ = db.Close() }
}

func newListContext(apiKey string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workshops", nil)
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func activeTenantRow(usage int64, limit sql.NullInt64, validTo sql.NullTime) *sqlmock.Rows {
	now := time.Now()
	var limitVal, validToVal interface{}
	if limit.Valid {
		limitVal = limit.Int64
	}
	if validTo.Valid {
		validToVal = validTo.Time
	}
	return sqlmock.NewRows(tenantColumns).AddRow(
		uint64(1),
		"garage-nord",
		"wsd_key",
		usage,
		limitVal,
		validToVal,
		true,
		now,
		now,
	)
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestRequireAPIKey_MissingHeader(t *testing.T) {
	apiKeyMiddleware, _, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	ctx, rec := newListContext("")

	if err := apiKeyMiddleware.RequireAPIKey(okHandler)(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequireAPIKey_UnknownKey(t *testing.T) {
	apiKeyMiddleware, mock, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	ctx, rec := newListContext("unknown-key")

	mock.ExpectQuery(findTenantByAPIKeyQuery).
		WithArgs("unknown-key").
		WillReturnRows(sqlmock.NewRows(tenantColumns))

	if err := apiKeyMiddleware.RequireAPIKey(okHandler)(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRequireAPIKey_ExpiredKey(t *testing.T) {
	apiKeyMiddleware, mock, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	ctx, rec := newListContext("wsd_key")

	expired := sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true}
	mock.ExpectQuery(findTenantByAPIKeyQuery).
		WithArgs("wsd_key").
		WillReturnRows(activeTenantRow(0, sql.NullInt64{}, expired))

	if err := apiKeyMiddleware.RequireAPIKey(okHandler)(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestRequireAPIKey_QuotaExceeded(t *testing.T) {
	apiKeyMiddleware, mock, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	ctx, rec := newListContext("wsd_key")

	limit := sql.NullInt64{Int64: 100, Valid: true}
	mock.ExpectQuery(findTenantByAPIKeyQuery).
		WithArgs("wsd_key").
		WillReturnRows(activeTenantRow(104, limit, sql.NullTime{}))

	if err := apiKeyMiddleware.RequireAPIKey(okHandler)(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestRequireAPIKey_StoreErrorIsServiceUnavailable(t *testing.T) {
	apiKeyMiddleware, mock, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	ctx, rec := newListContext("wsd_key")

	mock.ExpectQuery(findTenantByAPIKeyQuery).
		WithArgs("wsd_key").
		WillReturnError(errors.New("driver: bad connection"))

	if err := apiKeyMiddleware.RequireAPIKey(okHandler)(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestRequireAPIKey_SetsTenantOnValidKey(t *testing.T) {
	apiKeyMiddleware, mock, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	ctx, rec := newListContext("wsd_key")

	limit := sql.NullInt64{Int64: 100, Valid: true}
	mock.ExpectQuery(findTenantByAPIKeyQuery).
		WithArgs("wsd_key").
		WillReturnRows(activeTenantRow(99, limit, sql.NullTime{}))

	handler := apiKeyMiddleware.RequireAPIKey(func(c echo.Context) error {
		tenant, ok := c.Get(middleware.ContextKeyTenant).(*entity.Tenant)
		if !ok || tenant.Username != "garage-nord" {
			t.Fatalf("expected tenant in context, got %v", c.Get(middleware.ContextKeyTenant))
		}
		if tenant.APIUsage != 99 {
			t.Fatalf("unexpected usage: %d", tenant.APIUsage)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRequireAPIKey_PreflightPassesThrough(t *testing.T) {
	apiKeyMiddleware, _, cleanup := newAPIKeyMiddleware(t)
	defer cleanup()

	e := echo.New()
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/workshops", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	if err := apiKeyMiddleware.RequireAPIKey(okHandler)(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected preflight to pass, got %d", rec.Code)
	}
}
