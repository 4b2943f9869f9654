package handlers

import (
	"dfc-optim-service/internal/api/dto"
	"dfc-optim-service/internal/domain"
	"dfc-optim-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// decodeBody reads exactly one JSON value from the request body. Numbers
// stay float64 so the graph processor sees plain JSON.
func decodeBody(c echo.Context) (any, error) {
	dec := json.NewDecoder(c.Request().Body)
	defer c.Request().Body.Close()

	var body any
	if err := dec.Decode(&body); err != nil {
		// body limit exceeded while reading
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, &domain.InvalidInputError{Reason: "invalid json body"}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, &domain.InvalidInputError{Reason: "body must contain only one JSON value"}
	}
	return body, nil
}

// writeError reports every pipeline failure, unusable input included, as
// an optimization failure. Echo errors (body limit) keep their own status.
func writeError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	log.Error("optimization failed",
		"req_id", obs.RequestID(c.Request().Context()),
		"path", c.Path(),
		"err", err,
	)

	var oe *domain.OptimizerError
	if errors.As(err, &oe) && oe.Command != "" {
		log.Debug("reproduce optimizer call", "req_id", obs.RequestID(c.Request().Context()), "cmd", oe.Command)
	}

	return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "Optimization failed",
		Message: err.Error(),
	})
}
