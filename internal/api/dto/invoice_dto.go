package dto

import "time"

// InvoiceIssueRequest payload for issuing an invoice.
type InvoiceIssueRequest struct {
	CompanyID  string    `json:"company_id"`
	PeriodFrom time.Time `json:"period_from"`
	PeriodTo   time.Time `json:"period_to"`
}

// InvoiceResponse is the wire shape of an invoice.
type InvoiceResponse struct {
	ID          string     `json:"id"`
	Number      string     `json:"number"`
	CompanyID   string     `json:"company_id"`
	PeriodFrom  time.Time  `json:"period_from"`
	PeriodTo    time.Time  `json:"period_to"`
	TotalAmount float64    `json:"total_amount"`
	Status      string     `json:"status"`
	IssuedAt    time.Time  `json:"issued_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}
