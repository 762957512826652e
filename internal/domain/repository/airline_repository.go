package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// AirlineRepository defines the interface for airline master-data lookups
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
	GetByName(ctx context.Context, name string) (*entity.Airline, error)
}
