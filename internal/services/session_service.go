// internal/services/session_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hodu/storefront/internal/models"
	"github.com/hodu/storefront/internal/storage"
)

// ErrNoSession is returned when the origin holds no complete session.
var ErrNoSession = errors.New("no active session")

type SessionService struct {
	store storage.Store
}

func NewSessionService(store storage.Store) *SessionService {
	return &SessionService{store: store}
}

// Current returns the stored session. A partial or inconsistent set of session
// keys counts as no session, and the leftovers are cleared.
func (s *SessionService) Current(ctx context.Context) (*models.Session, error) {
	values := make(map[string]string, len(models.SessionKeys))
	for _, key := range models.SessionKeys {
		v, err := s.store.Get(ctx, key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		values[key] = v
	}
	if len(values) == 0 {
		return nil, ErrNoSession
	}

	session, ok := sessionFrom(values)
	if !ok {
		logrus.WithField("keys", len(values)).Warn("Discarding incomplete session")
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNoSession
	}
	return session, nil
}

func sessionFrom(values map[string]string) (*models.Session, bool) {
	userType, ok := models.ParseUserType(values[models.KeyUserType])
	if !ok || values[models.KeyAccessToken] == "" {
		return nil, false
	}
	if _, present := values[models.KeyRefreshToken]; !present {
		return nil, false
	}
	info, present := values[models.KeyUserInfo]
	if !present || !json.Valid([]byte(info)) {
		return nil, false
	}
	return &models.Session{
		AccessToken:  values[models.KeyAccessToken],
		RefreshToken: values[models.KeyRefreshToken],
		UserInfo:     json.RawMessage(info),
		UserType:     userType,
	}, true
}

// Exists reports whether a complete session is stored.
func (s *SessionService) Exists(ctx context.Context) (bool, error) {
	_, err := s.Current(ctx)
	if errors.Is(err, ErrNoSession) {
		return false, nil
	}
	return err == nil, err
}

// Save writes all four session keys in one call.
func (s *SessionService) Save(ctx context.Context, session *models.Session) error {
	if err := s.store.SetMany(ctx, session.Entries()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes all four session keys in one call.
func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, models.SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
