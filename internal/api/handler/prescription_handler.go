package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

// PrescriptionHandler serves the prescription listings, the doctor's issue
// flow, and the pharmacist verification hub.
type PrescriptionHandler struct {
	records ports.RecordService
}

func NewPrescriptionHandler(records ports.RecordService) *PrescriptionHandler {
	return &PrescriptionHandler{records: records}
}

// List returns prescriptions scoped to the caller's role. Patients only see
// entries referencing their own email.
//
// @Summary      List prescriptions
// @Tags         prescriptions
// @Produce      json
// @Success      200  {object}  listPrescriptionsResponse
// @Router       /prescriptions [get]
func (h *PrescriptionHandler) List(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	prescriptions := h.records.ListPrescriptions(ports.ListPrescriptionsInput{
		Role:  cl.Role,
		Email: cl.Email,
	})

	data := make([]prescriptionResponse, 0, len(prescriptions))
	for _, p := range prescriptions {
		data = append(data, toPrescriptionResponse(p))
	}
	return c.JSON(http.StatusOK, listPrescriptionsResponse{Data: data, Total: len(data)})
}

// Issue creates a pending prescription on behalf of the active doctor.
//
// @Summary      Issue a prescription
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        body  body      issuePrescriptionRequest  true  "Prescription details"
// @Success      201   {object}  prescriptionResponse
// @Failure      400   {object}  errorResponse
// @Router       /prescriptions [post]
func (h *PrescriptionHandler) Issue(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req issuePrescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := h.records.IssuePrescription(c.Request().Context(), ports.IssuePrescriptionInput{
		PatientEmail: req.PatientEmail,
		Medication:   req.Medication,
		DoctorName:   cl.Name,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toPrescriptionResponse(*p))
}

// SetStatus advances a prescription through the verification state machine.
//
// @Summary      Update prescription status
// @Tags         prescriptions
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Prescription id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      204
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /prescriptions/{id}/status [post]
func (h *PrescriptionHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.records.SetPrescriptionStatus(c.Request().Context(), c.Param("id"), domain.PrescriptionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
