package middleware

import (
	"academy-api/core/cache"
	"academy-api/core/constants"
	"academy-api/core/controller"
	"academy-api/core/errors"
	"academy-api/core/logger"
	"academy-api/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(cache cache.Cache) *Middleware {
	return &Middleware{cache: cache}
}

// AuthMiddleware validates the bearer token and stores the resolved claims on
// the echo context. Handlers downstream always see a pre-resolved user and
// tenant; nothing below this layer re-derives identity.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c.Request().Header.Get("Authorization"))
			if err != nil {
				return controller.NewBaseController().ErrorResponse(c, err)
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewBaseController().ErrorResponse(c, err)
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewBaseController().ErrorResponse(c,
					errors.NewAppError(errors.ErrUnauthorized, "token scope is not access", nil))
			}

			c.Set(constants.ContextTokenData, claims)

			// Best-effort activity tracking for the cache warm-up worker.
			if m.cache != nil {
				if err := m.cache.MarkUserActive(c.Request().Context(), claims.UserID.String(), claims.TenantID.String()); err != nil {
					logger.Warn("Middleware:MarkUserActive", "error", err)
				}
			}

			return next(c)
		}
	}
}

// RequestIDMiddleware tags every request with a short correlation id.
func (m *Middleware) RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get("X-Request-ID")
			if reqID == "" {
				reqID = utils.GenerateRequestID()
			}
			c.Set(constants.ContextRequestID, reqID)
			c.Response().Header().Set("X-Request-ID", reqID)
			return next(c)
		}
	}
}
