package service

import (
	"context"
	"errors"
	"time"

	"github.com/Syeddabbas07/chest-ray/internal/domain/entity"
	"github.com/Syeddabbas07/chest-ray/internal/infrastructure/cache"
	"github.com/Syeddabbas07/chest-ray/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var ErrSessionInvalid = errors.New("session is invalid or expired")

// Session is the authenticated identity bound to one request.
type Session struct {
	AccountID uint
	Login     string
	Role      entity.Role
	TokenID   string
}

type SessionService interface {
	Issue(ctx context.Context, account *entity.Account) (string, *Session, error)
	Resolve(ctx context.Context, token string) (*Session, error)
	Revoke(ctx context.Context, session *Session) error
	Expiry() time.Duration
}

type sessionService struct {
	log        *logrus.Logger
	jwtService *jwt.JWTService
	store      cache.SessionStore
}

func NewSessionService(log *logrus.Logger, jwtService *jwt.JWTService, store cache.SessionStore) SessionService {
	return &sessionService{
		log:        log,
		jwtService: jwtService,
		store:      store,
	}
}

// Issue signs a session token for account and registers it in the store.
func (s *sessionService) Issue(ctx context.Context, account *entity.Account) (string, *Session, error) {
	token, tokenID, err := s.jwtService.GenerateSessionToken(account.ID, account.Login, string(account.Role))
	if err != nil {
		s.log.Warnf("Failed to generate session token: %+v", err)
		return "", nil, err
	}

	if err := s.store.Save(ctx, tokenID, account.ID, s.jwtService.GetExpiry()); err != nil {
		s.log.Warnf("Failed to store session token: %+v", err)
		return "", nil, err
	}

	return token, &Session{
		AccountID: account.ID,
		Login:     account.Login,
		Role:      account.Role,
		TokenID:   tokenID,
	}, nil
}

// Resolve validates token and checks that it has not been revoked.
func (s *sessionService) Resolve(ctx context.Context, token string) (*Session, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	role := entity.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrSessionInvalid
	}

	accountID, ok, err := s.store.Lookup(ctx, claims.TokenID)
	if err != nil {
		s.log.Warnf("Failed to look up session: %+v", err)
		return nil, err
	}
	if !ok || accountID != claims.AccountID {
		return nil, ErrSessionInvalid
	}

	return &Session{
		AccountID: claims.AccountID,
		Login:     claims.Login,
		Role:      role,
		TokenID:   claims.TokenID,
	}, nil
}

func (s *sessionService) Revoke(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	if err := s.store.Delete(ctx, session.TokenID); err != nil {
		s.log.Warnf("Failed to revoke session: %+v", err)
		return err
	}
	return nil
}

func (s *sessionService) Expiry() time.Duration {
	return s.jwtService.GetExpiry()
}
