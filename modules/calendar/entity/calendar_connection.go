package entity

import (
	"time"

	coreEntity "academy-api/core/entity"

	"github.com/google/uuid"
)

// CalendarConnection stores a student's external calendar provider link
// (Google only for now). Tokens are read by the external-calendar adapter
// and refreshed in place when expired.
type CalendarConnection struct {
	coreEntity.BaseEntity
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	TenantID       uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Provider       string    `db:"provider" json:"provider"` // "google"
	AccessToken    string    `db:"access_token" json:"-"`
	RefreshToken   string    `db:"refresh_token" json:"-"`
	TokenExpiresAt time.Time `db:"token_expires_at" json:"token_expires_at"`
	CalendarEmail  string    `db:"calendar_email" json:"calendar_email"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}
