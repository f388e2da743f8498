package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cathshield/cathshield/internal/risk"
)

func newTestHandler() (*Handler, *testEnv, *echo.Echo) {
	env := newTestEnv()
	return NewHandler(env.svc), env, echo.New()
}

func TestHandler_Calculate(t *testing.T) {
	h, env, e := newTestHandler()
	p := env.patients.add(24*time.Hour, risk.PatientFactors{})

	body := `{"patient_id":"` + p.ID.String() + `","dressing_failure":true,"blood_present":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk/calculate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Calculate(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var res AssessmentResult
	json.Unmarshal(rec.Body.Bytes(), &res)
	if res.Clisa.Score != 3 {
		t.Errorf("clisa = %v, want 3", res.Clisa.Score)
	}
	if res.Checkpoint == nil || res.Checkpoint.PatientID != p.ID {
		t.Errorf("checkpoint = %+v, want patient %s", res.Checkpoint, p.ID)
	}
}

func TestHandler_Calculate_MissingPatientID(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk/calculate", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Calculate(c)
	if err == nil {
		t.Fatal("expected error for missing patient_id")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("err = %v, want 400", err)
	}
}

func TestHandler_Calculate_UnknownPatient(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"patient_id":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk/calculate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Calculate(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("err = %v, want 404", err)
	}
}

func TestHandler_GetClisaTable(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk/clisa-table", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetClisaTable(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var table []risk.ClisaReferenceRow
	json.Unmarshal(rec.Body.Bytes(), &table)
	if len(table) != 3 {
		t.Errorf("table rows = %d, want 3", len(table))
	}
}

func TestHandler_GetDashboard_UnknownPatient(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetDashboard(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("err = %v, want 404", err)
	}
}

func TestHandler_RecordTractionEvent(t *testing.T) {
	h, env, e := newTestHandler()
	p := env.patients.add(24*time.Hour, risk.PatientFactors{})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"severity":"red"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.RecordTractionEvent(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if len(env.tractions.events) != 1 {
		t.Errorf("stored %d events, want 1", len(env.tractions.events))
	}
}

func TestHandler_ListTractionEvents_BadWindow(t *testing.T) {
	h, env, e := newTestHandler()
	p := env.patients.add(24*time.Hour, risk.PatientFactors{})

	req := httptest.NewRequest(http.MethodGet, "/?window_hours=-4", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.ListTractionEvents(c); err == nil {
		t.Error("expected error for negative window")
	}
}
