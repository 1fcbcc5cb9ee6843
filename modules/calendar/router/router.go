package router

import (
	"academy-api/core/middleware"
	"academy-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	controller *controller.CalendarController
}

func NewCalendarRouter(controller *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		controller: controller,
	}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	calendarRoutes := v1.Group("/private/calendar")
	calendarRoutes.Use(mw.AuthMiddleware())

	calendarRoutes.GET("", r.controller.GetCalendar)
	calendarRoutes.GET("/range", r.controller.GetCalendarRange)
	calendarRoutes.GET("/stats", r.controller.GetCalendarStats)
	calendarRoutes.GET("/export", r.controller.ExportCalendar)
}
