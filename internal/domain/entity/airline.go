package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is master data used to normalize the airline the user typed
// (IATA code or name) to a canonical display name
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
