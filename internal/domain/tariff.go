package domain

import "time"

// Tariff prices one unit of consumption for a meter type within a validity window.
type Tariff struct {
	ID           string
	Name         string
	MeterType    MeterType
	PricePerUnit float64
	ValidFrom    time.Time
	ValidTo      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ActiveAt reports whether the tariff applies at the given instant.
func (t *Tariff) ActiveAt(at time.Time) bool {
	if at.Before(t.ValidFrom) {
		return false
	}
	if t.ValidTo != nil && at.After(*t.ValidTo) {
		return false
	}
	return true
}
