package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLog writes one line per request.
func RequestLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			req := c.Request()
			log.Printf("[http] %s %s -> %d (%s)",
				req.Method, req.RequestURI, c.Response().Status, time.Since(start).Round(time.Millisecond))
			return err
		}
	}
}
