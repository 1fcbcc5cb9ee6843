package service

import (
	"context"
	"fmt"
	"time"

	"academy-api/core/errors"
	"academy-api/core/logger"
	"academy-api/core/utils"
	"academy-api/modules/calendar/dto"
	"academy-api/modules/calendar/entity"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const exportLinkTTL = 15 * time.Minute

func (s *calendarService) ExportCalendar(ctx context.Context, userID, tenantID uuid.UUID, start, end time.Time) (*dto.ExportResponse, error) {
	if s.storage == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "calendar export is not configured", nil)
	}

	view, err := s.GetUserCalendar(ctx, userID, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	body := buildICS(view.Events)
	key := fmt.Sprintf("exports/%s/%s/%s.ics", tenantID, userID, utils.GenerateID())

	if err := s.storage.Put(ctx, key, body, "text/calendar"); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store calendar export", err)
	}

	url, err := s.storage.PresignGet(ctx, key, exportLinkTTL)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to sign export link", err)
	}

	logger.Info("CalendarService:ExportCalendar",
		"user_id", userID,
		"tenant_id", tenantID,
		"events", len(view.Events),
		"key", key,
	)

	return &dto.ExportResponse{
		DownloadURL: url,
		ExpiresAt:   s.now().Add(exportLinkTTL).UTC(),
		EventCount:  len(view.Events),
	}, nil
}

func buildICS(events []entity.CalendarEvent) []byte {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//academy-api//student calendar//EN")

	for _, e := range events {
		ev := cal.AddEvent(e.Key())
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		ev.SetStartAt(e.StartAt)
		if e.EndAt.After(e.StartAt) {
			ev.SetEndAt(e.EndAt)
		} else {
			// Deadline events are exported as zero-length entries.
			ev.SetEndAt(e.StartAt)
		}

		switch e.Status {
		case entity.StatusCancelled:
			ev.SetStatus(ics.ObjectStatusCancelled)
		default:
			ev.SetStatus(ics.ObjectStatusConfirmed)
		}
	}

	return []byte(cal.Serialize())
}
