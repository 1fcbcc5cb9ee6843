package adapter

import (
	"context"
	"fmt"

	"academy-api/modules/calendar/entity"
	"academy-api/modules/calendar/repository"

	"github.com/google/uuid"
)

// TutoringAdapter projects one-on-one tutoring bookings into calendar
// events.
type TutoringAdapter struct {
	repo repository.TutoringRepository
}

func NewTutoringAdapter(repo repository.TutoringRepository) *TutoringAdapter {
	return &TutoringAdapter{repo: repo}
}

func (a *TutoringAdapter) SourceType() string {
	return SourceTutoring
}

func (a *TutoringAdapter) Fetch(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, error) {
	sessions, err := a.repo.ListForStudent(ctx, userID, tenantID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	events := make([]entity.CalendarEvent, 0, len(sessions))
	for _, s := range sessions {
		meta := map[string]string{
			"tutor_name": s.TutorName,
			"subject":    s.Subject,
		}
		if s.MeetingLink != nil {
			meta["meeting_link"] = *s.MeetingLink
		}

		events = append(events, entity.CalendarEvent{
			ID:          s.ID.String(),
			SourceType:  SourceTutoring,
			Title:       fmt.Sprintf("Tutoring: %s", s.Subject),
			Description: fmt.Sprintf("Session with %s", s.TutorName),
			StartAt:     s.StartAt.UTC(),
			EndAt:       s.EndAt.UTC(),
			Status:      mapTutoringStatus(s.Status),
			Metadata:    meta,
			OwnerUserID: s.StudentID,
			TenantID:    s.TenantID,
		})
	}
	return events, nil
}

func mapTutoringStatus(status string) entity.EventStatus {
	switch status {
	case "in_progress":
		return entity.StatusInProgress
	case "done":
		return entity.StatusCompleted
	case "cancelled", "no_show":
		return entity.StatusCancelled
	default: // booked, confirmed
		return entity.StatusScheduled
	}
}
