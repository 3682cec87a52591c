package domain

import "time"

// SystemParameter is a named configuration record. Sensitive values are
// stored sealed and decrypted by the reader.
type SystemParameter struct {
	Name       string
	Value      string
	TTLSeconds int
	UpdatedAt  time.Time
}
