package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"dinetap/internal/models"
)

// AccountRepository stores staff, kitchen and customer accounts in a single
// table discriminated by a closed role column. The role is always supplied as
// a typed models.Role, never as a raw caller string.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ListByTenantAndRole(ctx context.Context, tenantID int64, role models.Role, limit, offset int) ([]*models.Account, error)
	Delete(ctx context.Context, id int64) error
}

type accountRepo struct {
	db Database
}

func NewAccountRepo(db Database) AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (tenant_id, role, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, account.TenantID, string(account.Role), account.Name, account.Email).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	var role string
	query := `
		SELECT id, tenant_id, role, name, email, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&account.ID, &account.TenantID, &role, &account.Name, &account.Email, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account.Role = models.Role(role)
	return account, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	var role string
	query := `
		SELECT id, tenant_id, role, name, email, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	err := r.db.QueryRow(ctx, query, email).Scan(&account.ID, &account.TenantID, &role, &account.Name, &account.Email, &account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	account.Role = models.Role(role)
	return account, nil
}

func (r *accountRepo) ListByTenantAndRole(ctx context.Context, tenantID int64, role models.Role, limit, offset int) ([]*models.Account, error) {
	query := `
		SELECT id, tenant_id, role, name, email, created_at, updated_at
		FROM accounts
		WHERE tenant_id = $1 AND role = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, tenantID, string(role), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		var roleStr string
		if err := rows.Scan(&account.ID, &account.TenantID, &roleStr, &account.Name, &account.Email, &account.CreatedAt, &account.UpdatedAt); err != nil {
			return nil, err
		}
		account.Role = models.Role(roleStr)
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *accountRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
