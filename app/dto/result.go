package dto

import "time"

// UsageStatus is the quota report computed from an authenticated tenant.
// Limit, Remaining and ValidTo are nil for tenants without a quota or
// expiry date.
type UsageStatus struct {
	Current        int64
	Limit          *int64
	Remaining      *int64
	ValidTo        *time.Time
	IsExpired      bool
	IsLimitReached bool
}
