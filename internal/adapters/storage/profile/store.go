package profile

import (
	"context"

	domain "fitwise/internal/domain/profile"
)

// Store persists Profile state together with its attendance set.
// Absence is reported through the bool result, never as an error.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Profile, bool, error)
	FindByPhone(ctx context.Context, phone string) (domain.Profile, bool, error)
	Save(ctx context.Context, value domain.Profile) error
	List(ctx context.Context, filter ListFilter) ([]domain.Profile, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for List operations.
// Search matches a case-insensitive name substring or a phone substring.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
