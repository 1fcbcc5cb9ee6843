package calendar

import (
	"academy-api/core/cache"
	"academy-api/core/config"
	"academy-api/core/database"
	"academy-api/core/middleware"
	"academy-api/core/storage"
	"academy-api/modules/calendar/adapter"
	"academy-api/modules/calendar/controller"
	"academy-api/modules/calendar/repository"
	"academy-api/modules/calendar/router"
	"academy-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init wires the calendar module. Adding a new event source is a pure
// addition here: implement the adapter and register it.
func Init(e *echo.Echo, db database.Database, c cache.Cache, store storage.ExportStorage, cfg *config.Config) service.CalendarService {
	registry := adapter.NewRegistry(
		adapter.NewLiveSessionAdapter(repository.NewLiveSessionRepository(db)),
		adapter.NewCourseDeadlineAdapter(repository.NewCourseDeadlineRepository(db)),
		adapter.NewTutoringAdapter(repository.NewTutoringRepository(db)),
		adapter.NewGoogleCalendarAdapter(repository.NewConnectionRepository(db), cfg.GoogleAPI),
	)

	calendarService := service.NewCalendarService(registry, c, store, cfg.Calendar)
	calendarController := controller.NewCalendarController(calendarService)

	mw := middleware.NewMiddleware(c)
	router.NewCalendarRouter(calendarController).Setup(e, mw)

	return calendarService
}
