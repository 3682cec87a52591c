package domain

import "time"

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "ISSUED"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
)

// Invoice bills a company for consumption over a period.
type Invoice struct {
	ID          string
	Number      string
	CompanyID   string
	PeriodFrom  time.Time
	PeriodTo    time.Time
	TotalAmount float64
	Status      InvoiceStatus
	IssuedAt    time.Time
	PaidAt      *time.Time
}
