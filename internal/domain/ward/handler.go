package ward

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cathshield/cathshield/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("infection_control", "physician"))
	readGroup.GET("/ward/metrics", h.GetMetrics)
}

func (h *Handler) GetMetrics(c echo.Context) error {
	m, err := h.svc.GetMetrics(c.Request().Context(), c.QueryParam("ward_id"), c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}
