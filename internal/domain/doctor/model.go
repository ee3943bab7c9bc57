package doctor

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on-leave"
)

// Slot is a doctor's working window on one weekday. Start and End are HH:MM.
type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// Availability maps lower-case weekday names to working windows.
type Availability map[string]Slot

type Doctor struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Specialization string       `json:"specialization"`
	Department     string       `json:"department"`
	Experience     int          `json:"experience"`
	Qualifications []string     `json:"qualifications"`
	Availability   Availability `json:"availability"`
	Status         string       `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// AvailableOn reports whether the doctor works on the given weekday.
func (d *Doctor) AvailableOn(day time.Weekday) bool {
	slot, ok := d.Availability[weekdayKey(day)]
	return ok && slot.Available
}

func weekdayKey(day time.Weekday) string {
	return weekdays[day]
}

var weekdays = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Update carries the fields a client may change. Nil fields are left alone.
type Update struct {
	Name           *string       `json:"name"`
	Email          *string       `json:"email"`
	Phone          *string       `json:"phone"`
	Specialization *string       `json:"specialization"`
	Department     *string       `json:"department"`
	Experience     *int          `json:"experience"`
	Qualifications *[]string     `json:"qualifications"`
	Availability   *Availability `json:"availability"`
	Status         *string       `json:"status"`
}

func (u *Update) apply(d *Doctor) {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Email != nil {
		d.Email = *u.Email
	}
	if u.Phone != nil {
		d.Phone = *u.Phone
	}
	if u.Specialization != nil {
		d.Specialization = *u.Specialization
	}
	if u.Department != nil {
		d.Department = *u.Department
	}
	if u.Experience != nil {
		d.Experience = *u.Experience
	}
	if u.Qualifications != nil {
		d.Qualifications = *u.Qualifications
	}
	if u.Availability != nil {
		d.Availability = *u.Availability
	}
	if u.Status != nil {
		d.Status = *u.Status
	}
}
