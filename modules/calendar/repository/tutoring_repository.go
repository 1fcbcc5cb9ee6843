package repository

import (
	"context"
	"time"

	"academy-api/core/database"
	"academy-api/core/logger"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// TutoringRepository reads one-on-one tutoring bookings for the student side
// of the calendar.
type TutoringRepository interface {
	ListForStudent(ctx context.Context, studentID, tenantID uuid.UUID, start, end time.Time) ([]entity.TutoringSession, error)
}

type tutoringRepository struct {
	db database.Database
}

func NewTutoringRepository(db database.Database) TutoringRepository {
	return &tutoringRepository{db: db}
}

func (r *tutoringRepository) ListForStudent(ctx context.Context, studentID, tenantID uuid.UUID, start, end time.Time) ([]entity.TutoringSession, error) {
	query := `
		SELECT ts.id, ts.tenant_id, ts.student_id, ts.tutor_id,
		       u.full_name AS tutor_name, ts.subject, ts.meeting_link,
		       ts.start_at, ts.end_at, ts.status, ts.created_at, ts.updated_at
		FROM tutoring_sessions ts
		JOIN users u ON u.id = ts.tutor_id
		WHERE ts.student_id = $1
		  AND ts.tenant_id = $2
		  AND ts.start_at < $4
		  AND ts.end_at > $3
		ORDER BY ts.start_at
	`

	var sessions []entity.TutoringSession
	err := r.db.SelectContext(ctx, &sessions, query, studentID, tenantID, start, end)
	if err != nil {
		logger.Error("TutoringRepository:ListForStudent", "error", err)
		return nil, err
	}
	return sessions, nil
}
