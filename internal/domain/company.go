package domain

import "time"

// Company is a billed client of the utility.
type Company struct {
	ID           string
	Name         string
	TaxID        string
	Address      string
	ContactEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
