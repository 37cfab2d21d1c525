package service

import (
	"context"
	"errors"

	"github.com/emplo/profile-service/internal/crypto"
	"github.com/emplo/profile-service/internal/model"
	"github.com/emplo/profile-service/internal/repository"
)

var (
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailTaken         = errors.New("a profile with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrProfileNotFound    = errors.New("profile not found")
)

// AuthService handles registration, login and token-based identity lookup.
type AuthService struct {
	store  ProfileStore
	tokens *crypto.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(store ProfileStore, tokens *crypto.TokenIssuer) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates a new profile and returns it with a freshly issued
// token. The email-existence check here is advisory; the store's unique
// index settles concurrent duplicates.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.ProfileWithToken, error) {
	if req.Password == "" {
		return model.ProfileWithToken{}, ErrPasswordRequired
	}

	if _, err := s.store.GetByEmail(ctx, req.Email); err == nil {
		return model.ProfileWithToken{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return model.ProfileWithToken{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.ProfileWithToken{}, err
	}

	profile := &model.Profile{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.store.Insert(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.ProfileWithToken{}, ErrEmailTaken
		}
		return model.ProfileWithToken{}, err
	}

	// Registration tokens carry only the subject; the id claim is added on
	// login.
	token, err := s.tokens.Issue(profile.Email, "")
	if err != nil {
		return model.ProfileWithToken{}, err
	}

	user := profile.Name
	if user == "" {
		user = profile.Email
	}

	return model.ProfileWithToken{
		ID:          profile.ID.String(),
		User:        user,
		Email:       profile.Email,
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// Login verifies credentials and returns the profile with a token carrying
// both the subject email and the account id. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.ProfileWithToken, error) {
	profile, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return model.ProfileWithToken{}, ErrInvalidCredentials
		}
		return model.ProfileWithToken{}, err
	}

	if !crypto.VerifyPassword(req.Password, profile.PasswordHash) {
		return model.ProfileWithToken{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(profile.Email, profile.ID.String())
	if err != nil {
		return model.ProfileWithToken{}, err
	}

	return model.ProfileWithToken{
		ID:          profile.ID.String(),
		User:        profile.Name,
		Email:       profile.Email,
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// WhoAmI resolves the subject email of an already-validated token to its
// profile.
func (s *AuthService) WhoAmI(ctx context.Context, email string) (model.MeResponse, error) {
	profile, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return model.MeResponse{}, ErrProfileNotFound
		}
		return model.MeResponse{}, err
	}

	return model.MeResponse{
		ID:        profile.ID.String(),
		Name:      profile.Name,
		Email:     profile.Email,
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}, nil
}
