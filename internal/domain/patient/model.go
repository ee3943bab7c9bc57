package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a registered clinic patient. CreatedAt is set once on insert.
type Patient struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Gender            string    `json:"gender"`
	DateOfBirth       string    `json:"date_of_birth"`
	PreferredLanguage string    `json:"preferred_language"`
	City              string    `json:"city"`
	Address           string    `json:"address"`
	PinCode           string    `json:"pin_code"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Update carries the fields a client may change. Nil fields are left alone.
type Update struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Gender            *string `json:"gender"`
	DateOfBirth       *string `json:"date_of_birth"`
	PreferredLanguage *string `json:"preferred_language"`
	City              *string `json:"city"`
	Address           *string `json:"address"`
	PinCode           *string `json:"pin_code"`
}

func (u *Update) apply(p *Patient) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.Name, u.Name)
	set(&p.Phone, u.Phone)
	set(&p.Gender, u.Gender)
	set(&p.DateOfBirth, u.DateOfBirth)
	set(&p.PreferredLanguage, u.PreferredLanguage)
	set(&p.City, u.City)
	set(&p.Address, u.Address)
	set(&p.PinCode, u.PinCode)
}

// Age returns the patient's age in whole years at ref, or -1 when the date of
// birth does not parse.
func (p *Patient) Age(ref time.Time) int {
	dob, err := time.ParseInLocation("2006-01-02", p.DateOfBirth, ref.Location())
	if err != nil {
		return -1
	}
	years := ref.Year() - dob.Year()
	if ref.Month() < dob.Month() || (ref.Month() == dob.Month() && ref.Day() < dob.Day()) {
		years--
	}
	return years
}
