// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/openmarket"
	"github.com/hodu/storefront/internal/storage"
)

// ErrNoAccessToken is returned when the API accepts a login without issuing an
// access token.
var ErrNoAccessToken = errors.New("login response carries no access token")

type AuthService struct {
	api      AccountAPI
	sessions *SessionService
	store    storage.Store
}

type SignupRequest struct {
	Username    string `json:"username" validate:"required,username"`
	Password    string `json:"password" validate:"required,strong_password"`
	Name        string `json:"name" validate:"required"`
	PhonePrefix string `json:"phone_prefix" validate:"required,phone_prefix"`
	PhoneMiddle string `json:"phone_middle" validate:"required,phone_group"`
	PhoneLast   string `json:"phone_last" validate:"required,phone_group"`
}

func (r *SignupRequest) PhoneNumber() string {
	return r.PhonePrefix + r.PhoneMiddle + r.PhoneLast
}

func NewAuthService(api AccountAPI, sessions *SessionService, store storage.Store) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		store:    store,
	}
}

// Login authenticates against the API and stores the resulting session.
func (s *AuthService) Login(ctx context.Context, kind models.UserType, username, password string) (*models.Session, error) {
	resp, err := s.api.Login(ctx, openmarket.LoginRequest{
		Username:  username,
		Password:  password,
		LoginType: kind.LoginType(),
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Access == "" {
		return nil, fmt.Errorf("login: %w", ErrNoAccessToken)
	}

	session := &models.Session{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		UserInfo:     resp.User,
		UserType:     kind,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

// CheckUsername asks the API whether username is free.
func (s *AuthService) CheckUsername(ctx context.Context, username string) error {
	if err := s.api.ValidateUsername(ctx, username); err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

func (s *AuthService) Signup(ctx context.Context, kind models.UserType, req *SignupRequest) error {
	err := s.api.Signup(ctx, kind, openmarket.SignupRequest{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber(),
	})
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// CheckedUsername returns the username last confirmed available for kind.
func (s *AuthService) CheckedUsername(ctx context.Context, kind models.UserType) (string, error) {
	v, err := s.store.Get(ctx, models.CheckedUsernameKey(kind))
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *AuthService) RememberCheckedUsername(ctx context.Context, kind models.UserType, username string) error {
	return storage.Set(ctx, s.store, models.CheckedUsernameKey(kind), username)
}

func (s *AuthService) ForgetCheckedUsername(ctx context.Context, kind models.UserType) error {
	return s.store.Remove(ctx, models.CheckedUsernameKey(kind))
}
