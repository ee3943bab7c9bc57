// Package analytics derives the dashboard summary from the clinic's patient,
// appointment and consultation collections.
//
// Compute is pure: it reads its inputs, never modifies them, and takes the
// reference instant as a parameter instead of reading the clock. Calendar
// comparisons (current month, previous month, trend days) happen in the
// reference instant's location.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusCompleted = "completed"
	StatusScheduled = "scheduled"

	// TrendDays is the length of the appointment trend series.
	TrendDays = 30

	dayLayout = "2006-01-02"
)

// DefaultUnitRate is the revenue credited per consultation or completed
// appointment.
var DefaultUnitRate = decimal.NewFromInt(50)

type Patient struct {
	ID        string
	CreatedAt time.Time
}

type Appointment struct {
	ID     string
	Date   string
	Status string
}

// Consultation is one billable unit. Only the count matters.
type Consultation struct {
	ID string
}

type Input struct {
	Patients      []Patient
	Appointments  []Appointment
	Consultations []Consultation
}

type TrendPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Summary struct {
	TotalPatients         int             `json:"total_patients"`
	TotalAppointments     int             `json:"total_appointments"`
	CompletedAppointments int             `json:"completed_appointments"`
	PendingAppointments   int             `json:"pending_appointments"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue        decimal.Decimal `json:"monthly_revenue"`
	PatientGrowth         float64         `json:"patient_growth"`
	AppointmentTrends     []TrendPoint    `json:"appointment_trends"`
}

// Options tunes Compute. An unset UnitRate means DefaultUnitRate.
type Options struct {
	UnitRate decimal.NullDecimal
}

func (o Options) unitRate() decimal.Decimal {
	if o.UnitRate.Valid {
		return o.UnitRate.Decimal
	}
	return DefaultUnitRate
}

// WithUnitRate returns options billing rate per unit.
func WithUnitRate(rate decimal.Decimal) Options {
	return Options{UnitRate: decimal.NewNullDecimal(rate)}
}

// Compute builds the summary as of ref.
//
// Only "completed" and "scheduled" appointments count as completed and
// pending; cancelled and rescheduled ones count toward neither.
func Compute(in Input, ref time.Time, opts Options) *Summary {
	rate := opts.unitRate()
	loc := ref.Location()
	year, month, _ := ref.Date()

	s := &Summary{
		TotalPatients:     len(in.Patients),
		TotalAppointments: len(in.Appointments),
	}

	monthlyCompleted := 0
	for _, a := range in.Appointments {
		switch a.Status {
		case StatusCompleted:
			s.CompletedAppointments++
			if inMonth(a.Date, loc, year, month) {
				monthlyCompleted++
			}
		case StatusScheduled:
			s.PendingAppointments++
		}
	}

	s.TotalRevenue = rate.Mul(decimal.NewFromInt(int64(len(in.Consultations))))
	s.MonthlyRevenue = rate.Mul(decimal.NewFromInt(int64(monthlyCompleted)))
	s.PatientGrowth = patientGrowth(in.Patients, loc, year, month)
	s.AppointmentTrends = trend(in.Appointments, ref)
	return s
}

// parseDay reads an appointment date as a calendar day in loc. RFC 3339
// instants are accepted and converted to loc.
func parseDay(s string, loc *time.Location) (time.Time, bool) {
	if t, err := time.ParseInLocation(dayLayout, s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}

func inMonth(date string, loc *time.Location, year int, month time.Month) bool {
	t, ok := parseDay(date, loc)
	if !ok {
		return false
	}
	y, m, _ := t.Date()
	return y == year && m == month
}

// patientGrowth compares patients created in the given month with those
// created in the month before it. It is 0 when the earlier month is empty.
func patientGrowth(patients []Patient, loc *time.Location, year int, month time.Month) float64 {
	prevYear, prevMonth, _ := time.Date(year, month-1, 1, 0, 0, 0, 0, loc).Date()

	current, last := 0, 0
	for _, p := range patients {
		y, m, _ := p.CreatedAt.In(loc).Date()
		switch {
		case y == year && m == month:
			current++
		case y == prevYear && m == prevMonth:
			last++
		}
	}
	if last == 0 {
		return 0
	}
	return float64(current-last) / float64(last) * 100
}

// trend counts appointments per day for the TrendDays days ending on ref's
// calendar day. Dates match by exact string equality.
func trend(appts []Appointment, ref time.Time) []TrendPoint {
	counts := make(map[string]int, len(appts))
	for _, a := range appts {
		counts[a.Date]++
	}

	y, m, d := ref.Date()
	out := make([]TrendPoint, 0, TrendDays)
	for i := TrendDays - 1; i >= 0; i-- {
		// noon keeps the arithmetic clear of DST transitions
		day := time.Date(y, m, d-i, 12, 0, 0, 0, ref.Location()).Format(dayLayout)
		out = append(out, TrendPoint{Date: day, Count: counts[day]})
	}
	return out
}
