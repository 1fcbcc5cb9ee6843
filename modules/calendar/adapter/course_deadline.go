package adapter

import (
	"context"
	"fmt"

	"academy-api/modules/calendar/entity"
	"academy-api/modules/calendar/repository"

	"github.com/google/uuid"
)

// CourseDeadlineAdapter projects recorded-course milestone deadlines as
// instantaneous events (end == start).
type CourseDeadlineAdapter struct {
	repo repository.CourseDeadlineRepository
}

func NewCourseDeadlineAdapter(repo repository.CourseDeadlineRepository) *CourseDeadlineAdapter {
	return &CourseDeadlineAdapter{repo: repo}
}

func (a *CourseDeadlineAdapter) SourceType() string {
	return SourceCourseDeadline
}

func (a *CourseDeadlineAdapter) Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error) {
	deadlines, err := a.repo.ListForUser(ctx, userID, tenantID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	events := make([]entity.CalendarEvent, 0, len(deadlines))
	for _, d := range deadlines {
		due := d.DueAt.UTC()
		events = append(events, entity.CalendarEvent{
			ID:          d.ID.String(),
			SourceType:  SourceCourseDeadline,
			Title:       fmt.Sprintf("%s due", d.ItemTitle),
			Description: d.CourseName,
			StartAt:     due,
			EndAt:       due,
			Status:      a.mapStatus(d),
			Metadata: map[string]string{
				"course_name": d.CourseName,
				"item_kind":   d.ItemKind,
			},
			OwnerUserID: d.UserID,
			TenantID:    d.TenantID,
		})
	}
	return events, nil
}

// A completed milestone is completed regardless of when. An unmet deadline
// stays scheduled even once past: the student still has to act on it.
func (a *CourseDeadlineAdapter) mapStatus(d entity.CourseDeadline) entity.EventStatus {
	if d.CompletedAt != nil {
		return entity.StatusCompleted
	}
	return entity.StatusScheduled
}
