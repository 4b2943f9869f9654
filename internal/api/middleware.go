package api

import (
	"dfc-optim-service/internal/platform/obs"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const headerRequestID = "X-Request-ID"

// requestID reuses the caller's X-Request-ID or mints one, echoes it back
// and stores it in the request context for log correlation.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				var err error
				if id, err = gonanoid.New(); err != nil {
					return err
				}
			}

			c.Response().Header().Set(headerRequestID, id)
			c.SetRequest(c.Request().WithContext(obs.WithRequestID(c.Request().Context(), id)))
			return next(c)
		}
	}
}

// requestLogger logs end-to-end request duration and response size, and
// counts requests per route and status when metrics are set.
func requestLogger(metrics *obs.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Write the error response here so the logged status is the final one.
			if err := next(c); err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			log.Info("request",
				"req_id", obs.RequestID(req.Context()),
				"method", req.Method,
				"path", req.URL.RequestURI(),
				"status", res.Status,
				"bytes", res.Size,
				"dur_ms", time.Since(start).Milliseconds(),
			)

			if metrics != nil {
				route := c.Path()
				if route == "" {
					route = "unmatched"
				}
				metrics.Requests.WithLabelValues(route, strconv.Itoa(res.Status)).Inc()
			}
			return nil
		}
	}
}
