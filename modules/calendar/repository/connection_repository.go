package repository

import (
	"context"
	"database/sql"

	"academy-api/core/database"
	"academy-api/core/logger"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// ConnectionRepository reads and refreshes external calendar provider links.
// This is the only table the calendar module ever writes to, and only to
// persist refreshed OAuth tokens.
type ConnectionRepository interface {
	GetActiveConnection(ctx context.Context, userID, tenantID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	UpdateTokens(ctx context.Context, conn *entity.CalendarConnection) error
}

type connectionRepository struct {
	db database.Database
}

func NewConnectionRepository(db database.Database) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) GetActiveConnection(ctx context.Context, userID, tenantID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, tenant_id, provider, access_token, refresh_token,
		       token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND tenant_id = $2 AND provider = $3 AND is_active = true
	`

	var conn entity.CalendarConnection
	err := r.db.GetContext(ctx, &conn, query, userID, tenantID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ConnectionRepository:GetActiveConnection", "error", err)
		return nil, err
	}
	return &conn, nil
}

func (r *connectionRepository) UpdateTokens(ctx context.Context, conn *entity.CalendarConnection) error {
	query := `
		UPDATE calendar_connections
		SET access_token = $1, token_expires_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	err := r.db.ExecContext(ctx, query, conn.AccessToken, conn.TokenExpiresAt, conn.ID)
	if err != nil {
		logger.Error("ConnectionRepository:UpdateTokens", "error", err)
	}
	return err
}
