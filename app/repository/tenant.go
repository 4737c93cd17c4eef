package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-directory/app/entity"
)

// DBTX is the subset of *sql.DB / *sql.Tx the repositories need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type TenantRepository struct {
	db DBTX
}

func NewTenantRepository(db DBTX) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Create(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (username, api_key, api_usage, api_limit, api_validto, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		tenant.Username,
		tenant.APIKey,
		tenant.APIUsage,
		tenant.APILimit,
		tenant.APIValidTo,
		tenant.Active,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	tenant.ID = uint64(id)
	return nil
}

func (r *TenantRepository) FindByAPIKey(ctx context.Context, apiKey string) (*entity.Tenant, error) {
	query := `
		SELECT id, username, api_key, api_usage, api_limit, api_validto, active, created_at, updated_at
		FROM tenants WHERE api_key = ?
	`
	return r.findOne(ctx, query, apiKey)
}

func (r *TenantRepository) FindByUsername(ctx context.Context, username string) (*entity.Tenant, error) {
	query := `
		SELECT id, username, api_key, api_usage, api_limit, api_validto, active, created_at, updated_at
		FROM tenants WHERE username = ?
	`
	return r.findOne(ctx, query, username)
}

// IncrementUsage adds n to the tenant's usage counter as a single store-side
// update so concurrent requests for the same key cannot lose increments.
func (r *TenantRepository) IncrementUsage(ctx context.Context, apiKey string, n int64) error {
	query := `
		UPDATE tenants SET api_usage = api_usage + ?, updated_at = ? WHERE api_key = ?
	`
	_, err := r.db.ExecContext(ctx, query, n, time.Now(), apiKey)
	return err
}

func (r *TenantRepository) Update(ctx context.Context, tenant *entity.Tenant) error {
	query := `
		UPDATE tenants SET
			username = ?,
			api_key = ?,
			api_usage = ?,
			api_limit = ?,
			api_validto = ?,
			active = ?,
			updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		tenant.Username,
		tenant.APIKey,
		tenant.APIUsage,
		tenant.APILimit,
		tenant.APIValidTo,
		tenant.Active,
		tenant.UpdatedAt,
		tenant.ID,
	)
	return err
}

func (r *TenantRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Tenant, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	tenant, err := scanTenant(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return tenant, nil
}

type rowScanner func(dest ...interface{}) error

func scanTenant(scan rowScanner) (*entity.Tenant, error) {
	tenant := &entity.Tenant{}
	if err := scan(
		&tenant.ID,
		&tenant.Username,
		&tenant.APIKey,
		&tenant.APIUsage,
		&tenant.APILimit,
		&tenant.APIValidTo,
		&tenant.Active,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return tenant, nil
}
