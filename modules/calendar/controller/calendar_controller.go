package controller

import (
	"net/http"
	"time"

	"academy-api/core/constants"
	"academy-api/core/errors"
	"academy-api/core/utils"
	"academy-api/modules/calendar/entity"
	"academy-api/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	service service.CalendarService
}

func NewCalendarController(service service.CalendarService) *CalendarController {
	return &CalendarController{service: service}
}

// GetCalendar returns the unified calendar for a day/week/month view.
// GET /api/v1/private/calendar?granularity=month&date=2026-09-01T00:00:00Z
func (c *CalendarController) GetCalendar(ctx echo.Context) error {
	userID, tenantID, err := scopeFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, err)
	}

	reference := time.Now().UTC()
	if dateStr := ctx.QueryParam("date"); dateStr != "" {
		var parseErr error
		reference, parseErr = parseInstant(dateStr)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, errors.NewAppError(errors.ErrInvalidInput, "invalid date", nil))
		}
	}

	// The granularity passes through raw; the resolver owns the fallback
	// for unknown values.
	granularity := entity.Granularity(ctx.QueryParam("granularity"))
	if granularity == "" {
		granularity = entity.GranularityMonth
	}

	result, svcErr := c.service.GetCalendarView(ctx.Request().Context(), userID, tenantID, reference, granularity)
	if svcErr != nil {
		return c.errorJSON(ctx, svcErr)
	}
	return ctx.JSON(http.StatusOK, result)
}

// GetCalendarRange returns the unified calendar for an arbitrary range.
// GET /api/v1/private/calendar/range?start=...&end=...
func (c *CalendarController) GetCalendarRange(ctx echo.Context) error {
	userID, tenantID, err := scopeFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, err)
	}

	start, end, parseErr := parseRange(ctx)
	if parseErr != nil {
		return ctx.JSON(http.StatusBadRequest, parseErr)
	}

	result, svcErr := c.service.GetUserCalendar(ctx.Request().Context(), userID, tenantID, start, end)
	if svcErr != nil {
		return c.errorJSON(ctx, svcErr)
	}
	return ctx.JSON(http.StatusOK, result)
}

// GetCalendarStats returns the summary counters for the month around date.
// GET /api/v1/private/calendar/stats?date=...
func (c *CalendarController) GetCalendarStats(ctx echo.Context) error {
	userID, tenantID, err := scopeFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, err)
	}

	reference := time.Now().UTC()
	if dateStr := ctx.QueryParam("date"); dateStr != "" {
		var parseErr error
		reference, parseErr = parseInstant(dateStr)
		if parseErr != nil {
			return ctx.JSON(http.StatusBadRequest, errors.NewAppError(errors.ErrInvalidInput, "invalid date", nil))
		}
	}

	result, svcErr := c.service.GetCalendarStats(ctx.Request().Context(), userID, tenantID, reference)
	if svcErr != nil {
		return c.errorJSON(ctx, svcErr)
	}
	return ctx.JSON(http.StatusOK, result)
}

// ExportCalendar generates an ICS file for the range and returns a download
// link.
// GET /api/v1/private/calendar/export?start=...&end=...
func (c *CalendarController) ExportCalendar(ctx echo.Context) error {
	userID, tenantID, err := scopeFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, err)
	}

	start, end, parseErr := parseRange(ctx)
	if parseErr != nil {
		return ctx.JSON(http.StatusBadRequest, parseErr)
	}

	result, svcErr := c.service.ExportCalendar(ctx.Request().Context(), userID, tenantID, start, end)
	if svcErr != nil {
		return c.errorJSON(ctx, svcErr)
	}
	return ctx.JSON(http.StatusOK, result)
}

func (c *CalendarController) errorJSON(ctx echo.Context, err error) error {
	if ae, ok := err.(*errors.AppError); ok {
		switch ae.Code {
		case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
			return ctx.JSON(http.StatusBadRequest, ae)
		case errors.ErrNotFound:
			return ctx.JSON(http.StatusNotFound, ae)
		}
	}
	return ctx.JSON(http.StatusInternalServerError, errors.NewAppError(errors.ErrInternalServer, err.Error(), err))
}

// scopeFromContext reads the pre-resolved user and tenant from the auth
// middleware. Everything below the controller receives them explicitly.
func scopeFromContext(ctx echo.Context) (uuid.UUID, uuid.UUID, *errors.AppError) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	if !ok || claims == nil {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "no authenticated user", nil)
	}
	if claims.UserID == uuid.Nil || claims.TenantID == uuid.Nil {
		return uuid.Nil, uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "token missing user or tenant scope", nil)
	}
	return claims.UserID, claims.TenantID, nil
}

func parseRange(ctx echo.Context) (time.Time, time.Time, *errors.AppError) {
	startStr := ctx.QueryParam("start")
	endStr := ctx.QueryParam("end")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "start and end are required", nil)
	}

	start, err := parseInstant(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "invalid start format", nil)
	}
	end, err := parseInstant(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "invalid end format", nil)
	}
	return start, end, nil
}

// parseInstant accepts RFC3339 instants and bare dates.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
