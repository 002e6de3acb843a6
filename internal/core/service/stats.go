package service

import (
	"time"

	"github.com/medscript/clinical-records/internal/core/domain"
	"github.com/medscript/clinical-records/internal/core/ports"
)

// ComputeOverview derives the dashboard figures from full snapshots. It is
// deterministic for a given snapshot and never patches figures incrementally:
// every call rescans the inputs. "Today" is calendar-date equality of the
// prescription date and now in loc, not timestamp range arithmetic.
func ComputeOverview(users []domain.User, prescriptions []domain.Prescription, now time.Time, loc *time.Location) ports.Overview {
	if loc == nil {
		loc = time.UTC
	}

	overview := ports.Overview{
		TotalPrescriptions: len(prescriptions),
		StatusCounts:       make(map[domain.PrescriptionStatus]int),
	}

	for _, u := range users {
		switch u.Role {
		case domain.RoleDoctor:
			overview.Doctors++
		case domain.RolePatient:
			overview.Patients++
		case domain.RolePharmacist:
			overview.Pharmacists++
		}
	}

	ny, nm, nd := now.In(loc).Date()
	for _, p := range prescriptions {
		overview.StatusCounts[p.Status]++
		py, pm, pd := p.Date.In(loc).Date()
		if py == ny && pm == nm && pd == nd {
			overview.TodayPrescriptions++
		}
	}

	return overview
}
