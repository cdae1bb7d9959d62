package repository

import (
	"context"

	"github.com/ogc16/FitnessApp/internal/models"
)

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, account.ID, account.Email, account.PasswordHash).
		Scan(&account.CreatedAt)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE email = $1
	`
	var account models.Account
	err := r.db.QueryRow(ctx, query, email).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE id = $1
	`
	var account models.Account
	err := r.db.QueryRow(ctx, query, id).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
