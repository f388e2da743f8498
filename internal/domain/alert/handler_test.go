package alert

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cathshield/cathshield/pkg/pagination"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), svc, echo.New()
}

func TestHandler_ListAlerts_FilterByPatient(t *testing.T) {
	h, svc, e := newTestHandler()

	patientID := uuid.New()
	svc.Record(context.Background(), Generate(TriggerInput{PatientID: patientID, DressingFailure: true}))
	svc.Record(context.Background(), Generate(TriggerInput{PatientID: uuid.New(), DressingFailure: true}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?patient_id="+patientID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAlerts(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp pagination.Response
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("total = %d, want 1", resp.Total)
	}
}

func TestHandler_ListAlerts_BadPatientID(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?patient_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAlerts(c); err == nil {
		t.Error("expected error for malformed patient_id")
	}
}

func TestHandler_AcknowledgeAlert(t *testing.T) {
	h, svc, e := newTestHandler()

	stored, _ := svc.Record(context.Background(), Generate(TriggerInput{PatientID: uuid.New(), DressingFailure: true}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(stored[0].ID.String())

	if err := h.AcknowledgeAlert(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var a Alert
	json.Unmarshal(rec.Body.Bytes(), &a)
	if !a.Acknowledged {
		t.Error("response alert not acknowledged")
	}
}

func TestHandler_AcknowledgeAlert_NotFound(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.AcknowledgeAlert(c); err == nil {
		t.Error("expected error for unknown alert")
	}
}
