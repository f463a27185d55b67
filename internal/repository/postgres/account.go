package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cypresslabs/identity-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, phone, email, handle, password_hash, age, gender,
			 avatar_url, bio, signature, status, role, created_at, updated_at, last_login_at`

// uniqueViolation is the postgres error code for unique constraint failures.
const uniqueViolation = "23505"

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, int64(id)))
	if err != nil {
		return model.Account{}, mapError("failed to get account by id", err)
	}

	return account, nil
}

func (r *AccountRepository) FindByPhone(ctx context.Context, phone string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE phone = $1 AND phone <> ''`

	account, err := scanAccount(r.db.QueryRow(ctx, query, phone))
	if err != nil {
		return model.Account{}, mapError("failed to get account by phone", err)
	}

	return account, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1 AND email <> ''`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return model.Account{}, mapError("failed to get account by email", err)
	}

	return account, nil
}

func (r *AccountRepository) FindByHandle(ctx context.Context, handle string) ([]model.Account, error) {
	// Retrieval order is stable so that password probing over duplicate
	// handles is deterministic.
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE handle = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, handle)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by handle: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (` + accountColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		int64(account.ID), account.Phone, account.Email, account.Handle, account.PasswordHash,
		account.Age, account.Gender, account.AvatarURL, account.Bio, account.Signature,
		account.Status, account.Role, account.CreatedAt, account.UpdatedAt, account.LastLoginAt,
	))
	if err != nil {
		return model.Account{}, mapError("failed to create account", err)
	}

	return saved, nil
}

// Update rewrites the row identified by id. The id column itself is part of
// the SET list, so reassigning an account id is one atomic statement.
func (r *AccountRepository) Update(ctx context.Context, id uint64, account model.Account) (model.Account, error) {
	query := `UPDATE accounts
			  SET id = $2, phone = $3, email = $4, handle = $5, password_hash = $6,
			      age = $7, gender = $8, avatar_url = $9, bio = $10, signature = $11,
			      status = $12, role = $13, updated_at = $14, last_login_at = $15
			  WHERE id = $1
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		int64(id), int64(account.ID), account.Phone, account.Email, account.Handle,
		account.PasswordHash, account.Age, account.Gender, account.AvatarURL, account.Bio,
		account.Signature, account.Status, account.Role, account.UpdatedAt, account.LastLoginAt,
	))
	if err != nil {
		return model.Account{}, mapError("failed to update account", err)
	}

	return saved, nil
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var account model.Account
	var id int64
	err := row.Scan(
		&id, &account.Phone, &account.Email, &account.Handle, &account.PasswordHash,
		&account.Age, &account.Gender, &account.AvatarURL, &account.Bio, &account.Signature,
		&account.Status, &account.Role, &account.CreatedAt, &account.UpdatedAt, &account.LastLoginAt,
	)
	if err != nil {
		return model.Account{}, err
	}
	account.ID = uint64(id)
	return account, nil
}

func mapError(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return model.ErrConflict
	}

	return fmt.Errorf("%s: %w", msg, err)
}
