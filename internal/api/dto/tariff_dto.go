package dto

import "time"

// TariffRequest payload for create/update.
type TariffRequest struct {
	Name         string     `json:"name"`
	MeterType    string     `json:"meter_type"`
	PricePerUnit float64    `json:"price_per_unit"`
	ValidFrom    time.Time  `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to,omitempty"`
}

// TariffResponse is the wire shape of a tariff.
type TariffResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	MeterType    string     `json:"meter_type"`
	PricePerUnit float64    `json:"price_per_unit"`
	ValidFrom    time.Time  `json:"valid_from"`
	ValidTo      *time.Time `json:"valid_to,omitempty"`
}
