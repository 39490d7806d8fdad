package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dinetap/internal/caching"
	"dinetap/internal/common"
	"dinetap/internal/models"
)

const sessionTTL = 4 * time.Hour

// SessionService opens and resolves table sessions, the QR entry point for
// customers. A session pins a token to one table at one restaurant; the
// token is the customer's only credential.
type SessionService interface {
	Start(ctx context.Context, tenantID int64, tableNumber int) (*models.TableSession, error)
	Resolve(ctx context.Context, token string) (*models.TableSession, error)
	End(ctx context.Context, token string) error
}

type sessionService struct {
	tenantSvc TenantService
	cacheSvc  caching.CacheService
}

func NewSessionService(tenantSvc TenantService, cacheSvc caching.CacheService) SessionService {
	return &sessionService{tenantSvc: tenantSvc, cacheSvc: cacheSvc}
}

func (s *sessionService) Start(ctx context.Context, tenantID int64, tableNumber int) (*models.TableSession, error) {
	tables, err := s.tenantSvc.TableCount(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tableNumber < 1 || tableNumber > tables {
		return nil, common.Validationf("table number must be between 1 and %d", tables)
	}

	session := &models.TableSession{
		Token:       uuid.NewString(),
		TenantID:    tenantID,
		TableNumber: tableNumber,
		StartedAt:   time.Now(),
	}
	if err := s.cacheSvc.SetSession(ctx, session, sessionTTL); err != nil {
		return nil, common.Internal("store table session", err)
	}
	return session, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*models.TableSession, error) {
	if err := common.ValidateRequiredString(token, "session token"); err != nil {
		return nil, err
	}
	session, err := s.cacheSvc.GetSession(ctx, token)
	if err != nil {
		return nil, common.Internal("resolve table session", err)
	}
	if session == nil {
		return nil, common.NotFoundf("table session not found or expired")
	}
	return session, nil
}

func (s *sessionService) End(ctx context.Context, token string) error {
	if err := s.cacheSvc.DeleteSession(ctx, token); err != nil {
		return common.Internal("end table session", err)
	}
	return nil
}
