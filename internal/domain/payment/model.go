package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses form a closed set; membership is checked on create but no
// transition order is enforced.
const (
	StatusReadyForRelease = "Ready for Release"
	StatusOutForPayment   = "Out for Payment"
	StatusShipped         = "Shipped"
	StatusCashed          = "Cashed"
	StatusReleased        = "Released"
	StatusDeterminingPath = "Determining Path"
	StatusEscheatment     = "Escheatment"
)

var validStatuses = map[string]bool{
	StatusReadyForRelease: true,
	StatusOutForPayment:   true,
	StatusShipped:         true,
	StatusCashed:          true,
	StatusReleased:        true,
	StatusDeterminingPath: true,
	StatusEscheatment:     true,
}

// ValidStatus reports whether s is one of the known payment statuses.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Payment maps to the payments table. UpdatedDate stays nil until a payment
// is modified.
type Payment struct {
	ID          int64           `db:"id" json:"id"`
	CheckNumber string          `db:"check_number" json:"checkNumber"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Status      string          `db:"status" json:"status"`
	PatientID   int64           `db:"patient_id" json:"patientId"`
	CreatedDate time.Time       `db:"created_date" json:"createdDate"`
	UpdatedDate *time.Time      `db:"updated_date" json:"updatedDate,omitempty"`
}

// Input is the create payload.
type Input struct {
	CheckNumber string          `json:"checkNumber" validate:"required,max=50"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status" validate:"required"`
	PatientID   int64           `json:"patientId" validate:"required,gt=0"`
}
