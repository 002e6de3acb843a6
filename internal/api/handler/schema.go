package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Role      string `json:"role"      validate:"required,oneof=doctor patient pharmacist admin"`
	Specialty string `json:"specialty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type addUserRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Role      string `json:"role"      validate:"required,oneof=doctor patient pharmacist admin"`
	Specialty string `json:"specialty"`
}

type issuePrescriptionRequest struct {
	PatientEmail string `json:"patient_email" validate:"required,email"`
	Medication   string `json:"medication"    validate:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_review verified canceled"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Specialty string    `json:"specialty,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type listUsersResponse struct {
	Data  []userResponse `json:"data"`
	Total int            `json:"total"`
}

type identityResponse struct {
	User     userResponse `json:"user"`
	IssuedAt time.Time    `json:"issued_at"`
}

type authResponse struct {
	Token    string            `json:"token,omitempty"`
	Identity *identityResponse `json:"identity,omitempty"`
	User     *userResponse     `json:"user,omitempty"`
}

type prescriptionResponse struct {
	ID           string    `json:"id"`
	PatientEmail string    `json:"patient_email"`
	DoctorName   string    `json:"doctor_name"`
	Medication   string    `json:"medication"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
}

type listPrescriptionsResponse struct {
	Data  []prescriptionResponse `json:"data"`
	Total int                    `json:"total"`
}

type overviewResponse struct {
	Doctors            int            `json:"doctors"`
	Patients           int            `json:"patients"`
	Pharmacists        int            `json:"pharmacists"`
	TotalPrescriptions int            `json:"total_prescriptions"`
	TodayPrescriptions int            `json:"today_prescriptions"`
	StatusCounts       map[string]int `json:"status_counts"`
}

type dashboardResponse struct {
	View   string           `json:"view"`
	Routes []string         `json:"routes"`
	Stats  overviewResponse `json:"stats"`
}
