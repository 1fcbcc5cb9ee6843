package adapter

import (
	"context"

	"academy-api/modules/calendar/entity"
	"academy-api/modules/calendar/repository"

	"github.com/google/uuid"
)

// LiveSessionAdapter projects live class sessions into calendar events.
type LiveSessionAdapter struct {
	repo repository.LiveSessionRepository
}

func NewLiveSessionAdapter(repo repository.LiveSessionRepository) *LiveSessionAdapter {
	return &LiveSessionAdapter{repo: repo}
}

func (a *LiveSessionAdapter) SourceType() string {
	return SourceLiveSession
}

func (a *LiveSessionAdapter) Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error) {
	sessions, err := a.repo.ListForUser(ctx, userID, tenantID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	events := make([]entity.CalendarEvent, 0, len(sessions))
	for _, s := range sessions {
		meta := map[string]string{
			"course_name": s.CourseName,
		}
		if s.RoomLink != nil {
			meta["room_link"] = *s.RoomLink
		}

		description := ""
		if s.Topic != nil {
			description = *s.Topic
		}

		events = append(events, entity.CalendarEvent{
			ID:          s.ID.String(),
			SourceType:  SourceLiveSession,
			Title:       s.Title,
			Description: description,
			StartAt:     s.StartAt.UTC(),
			EndAt:       s.EndAt.UTC(),
			Status:      mapLiveSessionStatus(s.Status),
			Metadata:    meta,
			OwnerUserID: userID,
			TenantID:    s.TenantID,
		})
	}
	return events, nil
}

func mapLiveSessionStatus(status string) entity.EventStatus {
	switch status {
	case "live":
		return entity.StatusInProgress
	case "ended":
		return entity.StatusCompleted
	case "cancelled":
		return entity.StatusCancelled
	default:
		return entity.StatusScheduled
	}
}
