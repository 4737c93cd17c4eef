package entity

import (
	"database/sql"
	"time"
)

type Tenant struct {
	ID         uint64
	Username   string
	APIKey     string
	APIUsage   int64
	APILimit   sql.NullInt64
	APIValidTo sql.NullTime
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsExpired reports whether the key's validity window has passed.
// A tenant without api_validto never expires.
func (t *Tenant) IsExpired(now time.Time) bool {
	return t.APIValidTo.Valid && t.APIValidTo.Time.Before(now)
}

// IsLimitReached reports whether the usage counter has reached the quota.
// A tenant without api_limit is unlimited.
func (t *Tenant) IsLimitReached() bool {
	return t.APILimit.Valid && t.APIUsage >= t.APILimit.Int64
}
