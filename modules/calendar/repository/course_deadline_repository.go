package repository

import (
	"context"
	"time"

	"academy-api/core/database"
	"academy-api/core/logger"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// CourseDeadlineRepository reads per-student recorded-course milestone
// deadlines. Deadlines are instantaneous: due_at is both start and end.
type CourseDeadlineRepository interface {
	ListForUser(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) ([]entity.CourseDeadline, error)
}

type courseDeadlineRepository struct {
	db database.Database
}

func NewCourseDeadlineRepository(db database.Database) CourseDeadlineRepository {
	return &courseDeadlineRepository{db: db}
}

func (r *courseDeadlineRepository) ListForUser(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) ([]entity.CourseDeadline, error) {
	query := `
		SELECT cd.id, cd.tenant_id, cd.user_id, cd.course_id, c.name AS course_name,
		       cd.item_title, cd.item_kind, cd.due_at, cd.completed_at,
		       cd.created_at, cd.updated_at
		FROM course_deadlines cd
		JOIN courses c ON c.id = cd.course_id
		WHERE cd.user_id = $1
		  AND cd.tenant_id = $2
		  AND cd.due_at >= $3
		  AND cd.due_at < $4
		ORDER BY cd.due_at
	`

	var deadlines []entity.CourseDeadline
	err := r.db.SelectContext(ctx, &deadlines, query, userID, tenantID, start, end)
	if err != nil {
		logger.Error("CourseDeadlineRepository:ListForUser", "error", err)
		return nil, err
	}
	return deadlines, nil
}
