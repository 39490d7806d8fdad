package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dinetap/internal/models"
)

// Mock repositories and services shared across the service test suites.

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

type MockMenuItemRepository struct {
	mock.Mock
}

func (m *MockMenuItemRepository) Create(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *models.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) SetOutOfStock(ctx context.Context, tenantID, id int64, outOfStock bool) error {
	args := m.Called(ctx, tenantID, id, outOfStock)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockMenuItemRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*models.MenuItem, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MenuItem), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, tenantID, id int64, status string, paymentReference *string) error {
	args := m.Called(ctx, tenantID, id, status, paymentReference)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByTenant(ctx context.Context, tenantID int64, status *string, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, tenantID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, customerID int64, status *string, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, customerID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListRevenueEligibleByDateRange(ctx context.Context, tenantID int64, from, to time.Time) ([]*models.Order, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) RevenueStatsByDateRange(ctx context.Context, tenantID int64, from, to time.Time) (float64, int, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) SubmitBatch(ctx context.Context, tenantID, orderID int64, customerID *int64, entries []models.RatingEntry) error {
	args := m.Called(ctx, tenantID, orderID, customerID, entries)
	return args.Error(0)
}

func (m *MockRatingRepository) ListByOrder(ctx context.Context, orderID int64) ([]*models.Rating, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Rating), args.Error(1)
}

func (m *MockRatingRepository) AverageForOrderWindow(ctx context.Context, tenantID int64, from, to time.Time) (float64, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRatingRepository) ReconcileAggregates(ctx context.Context, tenantID int64) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByTenantAndRole(ctx context.Context, tenantID int64, role models.Role, limit, offset int) ([]*models.Account, error) {
	args := m.Called(ctx, tenantID, role, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetMenu(ctx context.Context, tenantID int64) ([]*models.MenuItem, bool, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*models.MenuItem), args.Bool(1), args.Error(2)
}

func (m *MockCacheService) SetMenu(ctx context.Context, tenantID int64, items []*models.MenuItem, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, items, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteMenu(ctx context.Context, tenantID int64) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) GetDashboard(ctx context.Context, tenantID int64, rangeKey string, dest interface{}) (bool, error) {
	args := m.Called(ctx, tenantID, rangeKey, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) SetDashboard(ctx context.Context, tenantID int64, rangeKey string, dashboard interface{}, ttl time.Duration) error {
	args := m.Called(ctx, tenantID, rangeKey, dashboard, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteDashboards(ctx context.Context, tenantID int64) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

func (m *MockCacheService) SetSession(ctx context.Context, session *models.TableSession, ttl time.Duration) error {
	args := m.Called(ctx, session, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, token string) (*models.TableSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TableSession), args.Error(1)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenantCache(ctx context.Context, tenantID int64) error {
	args := m.Called(ctx, tenantID)
	return args.Error(0)
}

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}
