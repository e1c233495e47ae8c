package patient

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for dates of birth.
const DateLayout = "2006-01-02"

// Patient maps to the patients table.
type Patient struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"dateOfBirth"`
	Email       string    `db:"email" json:"email"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// Input is the create/update payload. Dates arrive as YYYY-MM-DD strings.
type Input struct {
	Name        string `json:"name" validate:"required,max=100"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// ParseDOB parses the payload date, accepting a plain date or a full
// RFC 3339 timestamp (the time portion is discarded).
func (in Input) ParseDOB() (time.Time, error) {
	if t, err := time.Parse(DateLayout, in.DateOfBirth); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, in.DateOfBirth)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", in.DateOfBirth)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Response is the representation returned to API callers, carrying the
// derived age.
type Response struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Email       string `json:"email"`
	Age         int    `json:"age"`
}

// ToResponse builds the wire representation, deriving age at the given time.
func (p *Patient) ToResponse(now time.Time) Response {
	return Response{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth.Format(DateLayout),
		Email:       p.Email,
		Age:         AgeAt(p.DateOfBirth, now),
	}
}

// AgeAt returns whole years elapsed between dob and now, not counting the
// current year until the birthday has occurred.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
