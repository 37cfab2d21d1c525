package service

import (
	"context"
	"errors"

	"github.com/emplo/profile-service/internal/crypto"
	"github.com/emplo/profile-service/internal/model"
	"github.com/emplo/profile-service/internal/repository"
)

// ProfileService handles profile read and update operations.
type ProfileService struct {
	store ProfileStore
}

// NewProfileService creates a new ProfileService.
func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the public projection of a profile.
func (s *ProfileService) Get(ctx context.Context, id model.AccountID) (model.ProfileResponse, error) {
	profile, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return model.ProfileResponse{}, ErrProfileNotFound
		}
		return model.ProfileResponse{}, err
	}

	return profile.Projection(), nil
}

// List returns the projections of every profile. The password digest is
// never included.
func (s *ProfileService) List(ctx context.Context) ([]model.ProfileResponse, error) {
	profiles, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]model.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, profiles[i].Projection())
	}

	return resp, nil
}

// Update applies a partial update, re-hashing the password when one is
// supplied. The id and created_at fields are never writable.
func (s *ProfileService) Update(ctx context.Context, id model.AccountID, req model.ProfileUpdate) (model.ProfileResponse, error) {
	patch := model.ProfilePatch{
		Name:  req.Name,
		Email: req.Email,
	}

	if req.Password != nil {
		if *req.Password == "" {
			return model.ProfileResponse{}, ErrPasswordRequired
		}
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			return model.ProfileResponse{}, err
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.store.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProfileNotFound):
			return model.ProfileResponse{}, ErrProfileNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return model.ProfileResponse{}, ErrEmailTaken
		default:
			return model.ProfileResponse{}, err
		}
	}

	return updated.Projection(), nil
}
