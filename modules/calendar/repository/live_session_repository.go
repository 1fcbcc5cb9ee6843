package repository

import (
	"context"
	"time"

	"academy-api/core/database"
	"academy-api/core/logger"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// LiveSessionRepository reads live class sessions for the calendar view.
// Scoping is done in SQL: only sessions of courses the student is enrolled
// in, within the student's tenant.
type LiveSessionRepository interface {
	ListForUser(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) ([]entity.LiveSession, error)
}

type liveSessionRepository struct {
	db database.Database
}

func NewLiveSessionRepository(db database.Database) LiveSessionRepository {
	return &liveSessionRepository{db: db}
}

func (r *liveSessionRepository) ListForUser(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) ([]entity.LiveSession, error) {
	// Partial window overlap included: a session that starts before the
	// window but ends inside it still shows up.
	query := `
		SELECT ls.id, ls.tenant_id, ls.course_id, c.name AS course_name,
		       ls.title, ls.topic, ls.room_link, ls.start_at, ls.end_at,
		       ls.status, ls.ended_at, ls.created_at, ls.updated_at
		FROM live_sessions ls
		JOIN courses c ON c.id = ls.course_id
		JOIN course_enrollments ce ON ce.course_id = ls.course_id
		WHERE ce.user_id = $1
		  AND ls.tenant_id = $2
		  AND ls.start_at < $4
		  AND (ls.end_at > $3 OR (ls.end_at = ls.start_at AND ls.start_at >= $3))
		ORDER BY ls.start_at
	`

	var sessions []entity.LiveSession
	err := r.db.SelectContext(ctx, &sessions, query, userID, tenantID, start, end)
	if err != nil {
		logger.Error("LiveSessionRepository:ListForUser", "error", err)
		return nil, err
	}
	return sessions, nil
}
