package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

type stubRecordService struct {
	users         []domain.User
	prescriptions []domain.Prescription

	lastSearch    string
	addedUser     *ports.AddUserInput
	addErr        error
	deletedID     string
	listScope     *ports.ListPrescriptionsInput
	issued        *ports.IssuePrescriptionInput
	statusID      string
	statusNext    domain.PrescriptionStatus
	statusErr     error
	overviewCalls int
}

func (s *stubRecordService) ListUsers(search string) []domain.User {
	s.lastSearch = search
	return s.users
}

func (s *stubRecordService) AddUser(_ context.Context, input ports.AddUserInput) (*domain.User, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	s.addedUser = &input
	return &domain.User{
		ID: "USR-9", Email: input.Email, Name: input.Name,
		Role: input.Role, Specialty: input.Specialty, CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *stubRecordService) DeleteUser(_ context.Context, id string) error {
	s.deletedID = id
	return nil
}

func (s *stubRecordService) ListPrescriptions(input ports.ListPrescriptionsInput) []domain.Prescription {
	s.listScope = &input
	return s.prescriptions
}

func (s *stubRecordService) IssuePrescription(_ context.Context, input ports.IssuePrescriptionInput) (*domain.Prescription, error) {
	s.issued = &input
	return &domain.Prescription{
		ID: "RX-1", PatientEmail: input.PatientEmail, DoctorName: input.DoctorName,
		Medication: input.Medication, Date: time.Now().UTC(), Status: domain.StatusPending,
	}, nil
}

func (s *stubRecordService) SetPrescriptionStatus(_ context.Context, id string, next domain.PrescriptionStatus) error {
	s.statusID, s.statusNext = id, next
	return s.statusErr
}

func (s *stubRecordService) Overview(_ time.Time) ports.Overview {
	s.overviewCalls++
	return ports.Overview{Doctors: 2, Patients: 3, TotalPrescriptions: 5}
}

func TestUserHandler_List(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{users: []domain.User{
		{ID: "USR-1", Email: "a@x.com", Name: "A", Role: domain.RoleDoctor},
		{ID: "USR-2", Email: "b@x.com", Name: "B", Role: domain.RolePatient},
	}}
	h := NewUserHandler(records)

	req := httptest.NewRequest(http.MethodGet, "/users?search=dr", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if records.lastSearch != "dr" {
		t.Fatalf("search term not forwarded, got %q", records.lastSearch)
	}

	var resp listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("unexpected listing: %+v", resp)
	}
	if resp.Data[0].ID != "USR-1" || resp.Data[1].ID != "USR-2" {
		t.Fatalf("listing order not preserved: %+v", resp.Data)
	}
}

func TestUserHandler_Create(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{}
	h := NewUserHandler(records)

	body := `{"name":"Grace","email":"grace@x.com","role":"pharmacist"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if records.addedUser == nil || records.addedUser.Role != domain.RolePharmacist {
		t.Fatalf("service not called with parsed input: %+v", records.addedUser)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{}
	h := NewUserHandler(records)

	body := `{"name":"Mallory","email":"m@x.com","role":"root"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %v", err)
	}
	if records.addedUser != nil {
		t.Fatalf("service must not be reached on validation failure")
	}
}

func TestUserHandler_Create_PropagatesDuplicate(t *testing.T) {
	e := newEcho()
	h := NewUserHandler(&stubRecordService{addErr: domain.ErrDuplicateIdentifier})

	body := `{"name":"Grace","email":"grace@x.com","role":"doctor"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != domain.ErrDuplicateIdentifier {
		t.Fatalf("expected duplicate error to propagate, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{}
	h := NewUserHandler(records)

	req := httptest.NewRequest(http.MethodDelete, "/users/USR-7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("USR-7")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if records.deletedID != "USR-7" {
		t.Fatalf("id not forwarded, got %q", records.deletedID)
	}
}

func TestPrescriptionHandler_List_ScopesByClaims(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{prescriptions: []domain.Prescription{
		{ID: "RX-1", PatientEmail: "pat@x.com", Status: domain.StatusPending},
	}}
	h := NewPrescriptionHandler(records)

	req := httptest.NewRequest(http.MethodGet, "/prescriptions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "patient")
	c.Set("email", "pat@x.com")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if records.listScope == nil || records.listScope.Role != domain.RolePatient || records.listScope.Email != "pat@x.com" {
		t.Fatalf("claims not forwarded as listing scope: %+v", records.listScope)
	}
}

func TestPrescriptionHandler_List_RequiresClaims(t *testing.T) {
	e := newEcho()
	h := NewPrescriptionHandler(&stubRecordService{})

	req := httptest.NewRequest(http.MethodGet, "/prescriptions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}

func TestPrescriptionHandler_Issue_UsesDoctorNameFromClaims(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{}
	h := NewPrescriptionHandler(records)

	body := `{"patient_email":"pat@x.com","medication":"Ibuprofen 400mg"}`
	req := httptest.NewRequest(http.MethodPost, "/prescriptions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "doctor")
	c.Set("name", "Dr. House")

	if err := h.Issue(c); err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if records.issued == nil || records.issued.DoctorName != "Dr. House" {
		t.Fatalf("doctor name must come from claims, got %+v", records.issued)
	}
}

func TestPrescriptionHandler_SetStatus(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{}
	h := NewPrescriptionHandler(records)

	body := `{"status":"verified"}`
	req := httptest.NewRequest(http.MethodPost, "/prescriptions/RX-1/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("RX-1")

	if err := h.SetStatus(c); err != nil {
		t.Fatalf("SetStatus returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if records.statusID != "RX-1" || records.statusNext != domain.StatusVerified {
		t.Fatalf("status update not forwarded: %q %q", records.statusID, records.statusNext)
	}
}

func TestPrescriptionHandler_SetStatus_RejectsUnknownStatus(t *testing.T) {
	e := newEcho()
	h := NewPrescriptionHandler(&stubRecordService{})

	body := `{"status":"shipped"}`
	req := httptest.NewRequest(http.MethodPost, "/prescriptions/RX-1/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.SetStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %v", err)
	}
}

func TestDashboardHandler_Show(t *testing.T) {
	e := newEcho()
	records := &stubRecordService{}
	h := NewDashboardHandler(records)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "pharmacist")

	if err := h.Show(c); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.View != "pharmacist" {
		t.Fatalf("expected pharmacist view, got %q", resp.View)
	}
	if records.overviewCalls != 1 {
		t.Fatalf("stats must be recomputed on each view, calls=%d", records.overviewCalls)
	}
	if resp.Stats.Doctors != 2 || resp.Stats.TotalPrescriptions != 5 {
		t.Fatalf("figures not surfaced: %+v", resp.Stats)
	}
}

func TestDashboardHandler_Show_UnknownRole(t *testing.T) {
	e := newEcho()
	h := NewDashboardHandler(&stubRecordService{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "intruder")

	if err := h.Show(c); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}
