package services

import (
	"context"
	"strings"

	"dinetap/internal/common"
	"dinetap/internal/models"
	"dinetap/internal/repositories"
)

// AccountService manages restaurant accounts. Credentials live with the
// identity provider; this service only owns the account records tokens
// reference.
type AccountService interface {
	RegisterCustomer(ctx context.Context, req *RegisterAccountRequest) (*models.Account, error)
	CreateStaff(ctx context.Context, tenantID int64, req *CreateStaffRequest) (*models.Account, error)
	GetProfile(ctx context.Context, accountID int64) (*models.Account, error)
	ListStaff(ctx context.Context, tenantID int64, role models.Role, limit, offset int) ([]*models.Account, error)
	RemoveStaff(ctx context.Context, tenantID, accountID int64) error
}

type RegisterAccountRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateStaffRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type accountService struct {
	accountRepo repositories.AccountRepository
	tenantSvc   TenantService
}

func NewAccountService(accountRepo repositories.AccountRepository, tenantSvc TenantService) AccountService {
	return &accountService{accountRepo: accountRepo, tenantSvc: tenantSvc}
}

func (s *accountService) RegisterCustomer(ctx context.Context, req *RegisterAccountRequest) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") {
		return nil, common.Validationf("email is not valid")
	}

	existing, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, common.Internal("look up account by email", err)
	}
	if existing != nil {
		return nil, common.Conflictf("an account with email %s already exists", email)
	}

	account := &models.Account{Role: models.RoleCustomer, Name: name, Email: email}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, common.Internal("create customer account", err)
	}
	return account, nil
}

func (s *accountService) CreateStaff(ctx context.Context, tenantID int64, req *CreateStaffRequest) (*models.Account, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, common.Validationf("role %q is not valid", req.Role)
	}
	if !role.TenantScoped() {
		return nil, common.Validationf("customer accounts cannot be created for a tenant")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(email, "email"); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, common.Internal("look up account by email", err)
	}
	if existing != nil {
		return nil, common.Conflictf("an account with email %s already exists", email)
	}

	account := &models.Account{TenantID: &tenantID, Role: role, Name: name, Email: email}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, common.Internal("create staff account", err)
	}
	return account, nil
}

func (s *accountService) GetProfile(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, common.Internal("load account", err)
	}
	if account == nil {
		return nil, common.NotFoundf("account %d not found", accountID)
	}
	return account, nil
}

func (s *accountService) ListStaff(ctx context.Context, tenantID int64, role models.Role, limit, offset int) ([]*models.Account, error) {
	if _, err := s.tenantSvc.Resolve(ctx, tenantID); err != nil {
		return nil, err
	}
	if !role.TenantScoped() {
		return nil, common.Validationf("role %q is not a staff role", role)
	}

	accounts, err := s.accountRepo.ListByTenantAndRole(ctx, tenantID, role, limit, offset)
	if err != nil {
		return nil, common.Internal("list staff accounts", err)
	}
	return accounts, nil
}

func (s *accountService) RemoveStaff(ctx context.Context, tenantID, accountID int64) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return common.Internal("load account", err)
	}
	if account == nil {
		return common.NotFoundf("account %d not found", accountID)
	}
	if account.TenantID == nil || *account.TenantID != tenantID {
		return common.Forbiddenf("account %d does not belong to this restaurant", accountID)
	}

	if err := s.accountRepo.Delete(ctx, accountID); err != nil {
		return common.Internal("delete account", err)
	}
	return nil
}
