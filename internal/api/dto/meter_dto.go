package dto

import "time"

// MeterRequest payload for create/update.
type MeterRequest struct {
	CompanyID string `json:"company_id"`
	Serial    string `json:"serial"`
	Type      string `json:"type"`
	Status    string `json:"status"`
}

// MeterResponse is the wire shape of a meter.
type MeterResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Serial    string    `json:"serial"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReadingRequest payload for recording a counter value.
type ReadingRequest struct {
	Value   float64   `json:"value"`
	TakenAt time.Time `json:"taken_at"`
}

// ReadingResponse is the wire shape of a reading.
type ReadingResponse struct {
	ID      string    `json:"id"`
	MeterID string    `json:"meter_id"`
	Value   float64   `json:"value"`
	TakenAt time.Time `json:"taken_at"`
}
