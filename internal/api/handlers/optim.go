package handlers

import (
	"dfc-optim-service/internal/api/dto"
	"dfc-optim-service/internal/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

type OptimHandler struct {
	Service *services.OptimizeService
}

// Optim runs the full pipeline and answers with the merged graph, or with
// Route-rooted trees when ?view=routes.
func (h *OptimHandler) Optim(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return writeError(c, err)
	}

	ctx := c.Request().Context()

	if c.QueryParam("view") == "routes" {
		framed, err := h.Service.Routes(ctx, body)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, framed)
	}

	res, err := h.Service.Optimize(ctx, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res.Graph)
}

// Needs answers with the flat request the graph would be sent as.
func (h *OptimHandler) Needs(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.Service.Needs(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewNeedsResponse(out.Request, out.Skipped))
}

// Raw answers with the optimizer's own result.
func (h *OptimHandler) Raw(c echo.Context) error {
	body, err := decodeBody(c)
	if err != nil {
		return writeError(c, err)
	}

	res, _, err := h.Service.Raw(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
