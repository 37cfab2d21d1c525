package service

import (
	"context"

	"github.com/emplo/profile-service/internal/model"
)

// ProfileStore is the persistence contract the services depend on. The MySQL
// repository implements it; tests supply an in-memory version with the same
// unique-email guarantee.
type ProfileStore interface {
	Insert(ctx context.Context, profile *model.Profile) error
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetByID(ctx context.Context, id model.AccountID) (*model.Profile, error)
	GetAll(ctx context.Context) ([]model.Profile, error)
	Update(ctx context.Context, id model.AccountID, patch model.ProfilePatch) (*model.Profile, error)
}
