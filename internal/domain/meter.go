package domain

import "time"

// MeterType identifies the metered resource.
type MeterType string

const (
	MeterElectricity MeterType = "ELECTRICITY"
	MeterGas         MeterType = "GAS"
	MeterWater       MeterType = "WATER"
)

// Valid reports whether the meter type is known.
func (t MeterType) Valid() bool {
	return t == MeterElectricity || t == MeterGas || t == MeterWater
}

// MeterStatus represents meter lifecycle states.
type MeterStatus string

const (
	MeterStatusActive         MeterStatus = "ACTIVE"
	MeterStatusDecommissioned MeterStatus = "DECOMMISSIONED"
)

// Meter is a metering device installed at a company site.
type Meter struct {
	ID        string
	CompanyID string
	Serial    string
	Type      MeterType
	Status    MeterStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
