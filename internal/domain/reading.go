package domain

import "time"

// Reading is a cumulative meter counter value at a point in time.
type Reading struct {
	ID        string
	MeterID   string
	Value     float64
	TakenAt   time.Time
	CreatedAt time.Time
}
