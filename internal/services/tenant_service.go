package services

import (
	"context"

	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/repositories"
)

// TenantService is the isolation anchor: every other service resolves the
// caller's tenant through it before doing any work.
type TenantService interface {
	Resolve(ctx context.Context, tenantID int64) (*models.Tenant, error)
	TableCount(ctx context.Context, tenantID int64) (int, error)
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	Update(ctx context.Context, tenantID int64, req *UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, tenantID int64) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo}
}

type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required"`
	TableCount int    `json:"table_count"`
}

// UpdateTenantRequest carries partial updates; nil fields keep their
// current value.
type UpdateTenantRequest struct {
	Name       *string `json:"name"`
	TableCount *int    `json:"table_count"`
}

func (s *tenantService) Resolve(ctx context.Context, tenantID int64) (*models.Tenant, error) {
	if tenantID <= 0 {
		return nil, common.Validationf("tenant id is required")
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, common.Internal("resolve tenant", err)
	}
	if tenant == nil {
		return nil, common.TenantNotFoundf("tenant %d not found", tenantID)
	}
	return tenant, nil
}

func (s *tenantService) TableCount(ctx context.Context, tenantID int64) (int, error) {
	tenant, err := s.Resolve(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return tenant.Tables(), nil
}

func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	tableCount := req.TableCount
	if tableCount <= 0 {
		tableCount = models.DefaultTableCount
	}

	tenant := &models.Tenant{
		Name:       req.Name,
		TableCount: tableCount,
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, common.Internal("create tenant", err)
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, tenantID int64, req *UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.Resolve(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, err
		}
		tenant.Name = *req.Name
	}
	if req.TableCount != nil {
		if *req.TableCount <= 0 {
			return nil, common.Validationf("table_count must be positive")
		}
		tenant.TableCount = *req.TableCount
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, common.Internal("update tenant", err)
	}
	return tenant, nil
}

func (s *tenantService) Delete(ctx context.Context, tenantID int64) error {
	if _, err := s.Resolve(ctx, tenantID); err != nil {
		return err
	}
	if err := s.tenantRepo.Delete(ctx, tenantID); err != nil {
		return common.Internal("delete tenant", err)
	}
	return nil
}

func (s *tenantService) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	tenants, err := s.tenantRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, common.Internal("list tenants", err)
	}
	return tenants, nil
}
