package monitoring

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cathshield/cathshield/internal/platform/auth"
	"github.com/cathshield/cathshield/internal/risk"
	"github.com/cathshield/cathshield/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole("nurse", "physician", "infection_control"))
	readGroup.GET("/risk/clisa-table", h.GetClisaTable)
	readGroup.GET("/patients/:id/dashboard", h.GetDashboard)
	readGroup.GET("/patients/:id/checkpoints", h.ListCheckpoints)
	readGroup.GET("/patients/:id/traction-events", h.ListTractionEvents)

	writeGroup := api.Group("", auth.RequireRole("nurse", "physician"))
	writeGroup.POST("/risk/calculate", h.Calculate)
	writeGroup.POST("/patients/:id/traction-events", h.RecordTractionEvent)
}

// calculateRequest mirrors the bedside assessment form: the six dressing
// flags plus the intervention that prompted the assessment, if any.
type calculateRequest struct {
	PatientID       uuid.UUID  `json:"patient_id"`
	DressingFailure bool       `json:"dressing_failure"`
	BloodPresent    bool       `json:"blood_present"`
	SweatPresent    bool       `json:"sweat_present"`
	MoisturePresent bool       `json:"moisture_present"`
	WhitePatches    bool       `json:"white_patches"`
	AirGap          bool       `json:"air_gap"`
	EventType       *EventType `json:"event_type,omitempty"`
}

func (h *Handler) Calculate(c echo.Context) error {
	var req calculateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.PatientID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}

	result, err := h.svc.RunAssessment(c.Request().Context(), AssessmentInput{
		PatientID: req.PatientID,
		Observation: risk.DressingObservation{
			DressingFailure: req.DressingFailure,
			BloodPresent:    req.BloodPresent,
			SweatPresent:    req.SweatPresent,
			MoisturePresent: req.MoisturePresent,
			WhitePatches:    req.WhitePatches,
			AirGap:          req.AirGap,
		},
		EventType: req.EventType,
	})
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetClisaTable(c echo.Context) error {
	return c.JSON(http.StatusOK, risk.ClisaTable())
}

func (h *Handler) GetDashboard(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	dash, err := h.svc.GetDashboard(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *Handler) ListCheckpoints(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p := pagination.FromContext(c)
	checkpoints, total, err := h.svc.ListCheckpoints(c.Request().Context(), id, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(checkpoints, total, p.Limit, p.Offset))
}

func (h *Handler) ListTractionEvents(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	windowHours := 24
	if raw := c.QueryParam("window_hours"); raw != "" {
		windowHours, err = strconv.Atoi(raw)
		if err != nil || windowHours <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid window_hours")
		}
	}

	events, err := h.svc.ListTractionEvents(c.Request().Context(), id, time.Duration(windowHours)*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, events)
}

type tractionEventRequest struct {
	Timestamp *time.Time            `json:"timestamp,omitempty"`
	Severity  risk.TractionSeverity `json:"severity"`
}

func (h *Handler) RecordTractionEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req tractionEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ev := &TractionEvent{PatientID: id, Severity: req.Severity}
	if req.Timestamp != nil {
		ev.Timestamp = *req.Timestamp
	}

	if err := h.svc.RecordTractionEvent(c.Request().Context(), ev); err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, ev)
}
