package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emplo/profile-service/internal/model"
	"github.com/emplo/profile-service/internal/repository"
)

// memoryStore is an in-memory ProfileStore carrying the same unique-email
// contract as the MySQL repository: the duplicate check and the insert
// happen under one lock, so concurrent duplicates lose the same way they
// would against the unique index.
type memoryStore struct {
	mu       sync.Mutex
	profiles map[model.AccountID]*model.Profile
}

func newMemoryStore() *memoryStore {
	return &memoryStore{profiles: make(map[model.AccountID]*model.Profile)}
}

func (m *memoryStore) Insert(_ context.Context, profile *model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.profiles {
		if p.Email == profile.Email {
			return repository.ErrDuplicateEmail
		}
	}

	now := time.Now().UTC()
	profile.ID = model.AccountID(uuid.NewString())
	profile.CreatedAt = now
	profile.UpdatedAt = now

	stored := *profile
	m.profiles[profile.ID] = &stored
	return nil
}

func (m *memoryStore) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.profiles {
		if p.Email == email {
			found := *p
			return &found, nil
		}
	}
	return nil, repository.ErrProfileNotFound
}

func (m *memoryStore) GetByID(_ context.Context, id model.AccountID) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	found := *p
	return &found, nil
}

func (m *memoryStore) GetAll(_ context.Context) ([]model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	profiles := make([]model.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

func (m *memoryStore) Update(_ context.Context, id model.AccountID, patch model.ProfilePatch) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	if patch.Email != nil && *patch.Email != p.Email {
		for _, other := range m.profiles {
			if other.ID != id && other.Email == *patch.Email {
				return nil, repository.ErrDuplicateEmail
			}
		}
		p.Email = *patch.Email
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		p.PasswordHash = *patch.PasswordHash
	}
	p.UpdatedAt = time.Now().UTC()

	updated := *p
	return &updated, nil
}
