package appointment

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusScheduled   = "scheduled"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	DefaultDurationMinutes = 30
	UnknownPatient         = "Unknown Patient"
	UnknownDoctor          = "Unknown Doctor"
)

// Appointment is a booked visit. Date is a calendar day (YYYY-MM-DD) and Time
// a wall-clock time (HH:MM), both in clinic local time.
type Appointment struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// When returns the sortable "date time" key.
func (a *Appointment) When() string {
	return a.Date + " " + a.Time
}

type AppointmentUpdate struct {
	PatientID *uuid.UUID `json:"patient_id"`
	DoctorID  *uuid.UUID `json:"doctor_id"`
	Date      *string    `json:"date"`
	Time      *string    `json:"time"`
	Reason    *string    `json:"reason"`
	Status    *string    `json:"status"`
}

func (u *AppointmentUpdate) apply(a *Appointment) {
	if u.PatientID != nil {
		a.PatientID = *u.PatientID
	}
	if u.DoctorID != nil {
		a.DoctorID = *u.DoctorID
	}
	if u.Date != nil {
		a.Date = *u.Date
	}
	if u.Time != nil {
		a.Time = *u.Time
	}
	if u.Reason != nil {
		a.Reason = *u.Reason
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
}

type Prescription struct {
	MedicineID   string `json:"medicine_id"`
	MedicineName string `json:"medicine_name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions,omitempty"`
}

// Consultation is one billable visit, optionally tied to an appointment.
type Consultation struct {
	ID              uuid.UUID      `json:"id"`
	AppointmentID   *uuid.UUID     `json:"appointment_id,omitempty"`
	PatientID       uuid.UUID      `json:"patient_id"`
	DoctorID        uuid.UUID      `json:"doctor_id"`
	Date            string         `json:"date"`
	Time            string         `json:"time"`
	DurationMinutes int            `json:"duration_minutes"`
	Status          string         `json:"status"`
	Symptoms        string         `json:"symptoms"`
	Diagnosis       string         `json:"diagnosis"`
	Prescriptions   []Prescription `json:"prescriptions"`
	Notes           string         `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
}

func (c *Consultation) When() string {
	return c.Date + " " + c.Time
}

type ConsultationUpdate struct {
	Date            *string         `json:"date"`
	Time            *string         `json:"time"`
	DurationMinutes *int            `json:"duration_minutes"`
	Status          *string         `json:"status"`
	Symptoms        *string         `json:"symptoms"`
	Diagnosis       *string         `json:"diagnosis"`
	Prescriptions   *[]Prescription `json:"prescriptions"`
	Notes           *string         `json:"notes"`
}

func (u *ConsultationUpdate) apply(c *Consultation) {
	if u.Date != nil {
		c.Date = *u.Date
	}
	if u.Time != nil {
		c.Time = *u.Time
	}
	if u.DurationMinutes != nil {
		c.DurationMinutes = *u.DurationMinutes
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Symptoms != nil {
		c.Symptoms = *u.Symptoms
	}
	if u.Diagnosis != nil {
		c.Diagnosis = *u.Diagnosis
	}
	if u.Prescriptions != nil {
		c.Prescriptions = *u.Prescriptions
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
}

// ConsultationView is a consultation with its participant names resolved.
type ConsultationView struct {
	Consultation
	PatientName string `json:"patient_name"`
	DoctorName  string `json:"doctor_name"`
}

// Board splits consultations around a reference day. Each bucket keeps the
// order of the list it was built from.
type Board struct {
	Today     []*ConsultationView `json:"today"`
	Upcoming  []*ConsultationView `json:"upcoming"`
	Past      []*ConsultationView `json:"past"`
	Completed int                 `json:"completed"`
}
