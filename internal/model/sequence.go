package model

import "time"

// Sequence backs the atomic counters behind document numbers.
type Sequence struct {
	Key       string    `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value     int64     `gorm:"not null;default:0" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
