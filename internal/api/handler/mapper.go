package handler

import (
	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Specialty: u.Specialty,
		CreatedAt: u.CreatedAt,
	}
}

func toIdentityResponse(id domain.Identity) identityResponse {
	return identityResponse{
		User:     toUserResponse(id.User),
		IssuedAt: id.IssuedAt,
	}
}

func toPrescriptionResponse(p domain.Prescription) prescriptionResponse {
	return prescriptionResponse{
		ID:           p.ID,
		PatientEmail: p.PatientEmail,
		DoctorName:   p.DoctorName,
		Medication:   p.Medication,
		Date:         p.Date,
		Status:       string(p.Status),
	}
}

func toOverviewResponse(o ports.Overview) overviewResponse {
	counts := make(map[string]int, len(o.StatusCounts))
	for status, n := range o.StatusCounts {
		counts[string(status)] = n
	}
	return overviewResponse{
		Doctors:            o.Doctors,
		Patients:           o.Patients,
		Pharmacists:        o.Pharmacists,
		TotalPrescriptions: o.TotalPrescriptions,
		TodayPrescriptions: o.TodayPrescriptions,
		StatusCounts:       counts,
	}
}
