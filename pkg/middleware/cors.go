package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS mirrors the frontend's credentialed cross-origin setup: the
// origin is echoed back only when allowlisted, and preflights are
// answered without hitting the handlers.
func CORS(allowedOrigins []string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			h := c.Response().Header()
			if origin != "" && (len(allowed) == 0 || allowed[origin]) {
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
				h.Set(echo.HeaderAccessControlAllowCredentials, "true")
				h.Add(echo.HeaderVary, echo.HeaderOrigin)
			}
			if c.Request().Method == http.MethodOptions {
				h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type,Authorization,Accept,X-Requested-With")
				h.Set(echo.HeaderAccessControlAllowMethods, "GET,POST,PUT,DELETE,OPTIONS")
				h.Set(echo.HeaderAccessControlMaxAge, "600")
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
