package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	DB *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{DB: db}
}

// CreateUser inserts a verified user and returns the new userid. Only called
// after OTP verification, hence is_verified=true.
func (r *AuthRepository) CreateUser(ctx context.Context, name, email, passwordHash, userType string) (int64, error) {
	var id int64
	query := `INSERT INTO portal_users (name, email, password, user_type, is_verified, created_at)
			VALUES ($1, $2, $3, $4, true, $5) RETURNING userid`
	if err := r.DB.QueryRow(ctx, query, name, email, passwordHash, userType, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AuthRepository) GetByEmail(ctx context.Context, email string) (*model.PortalUser, error) {
	var u model.PortalUser
	query := `SELECT userid, name, email, password, user_type, is_verified, last_login, created_at
			FROM portal_users
			WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.UserType, &u.IsVerified, &u.LastLogin, &u.CreatedAt); err != nil {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *AuthRepository) GetByEmailAndType(ctx context.Context, email, userType string) (*model.PortalUser, error) {
	var u model.PortalUser
	query := `SELECT userid, name, email, password, user_type, is_verified, last_login, created_at
			FROM portal_users
			WHERE email=$1 AND user_type=$2`
	if err := r.DB.QueryRow(ctx, query, email, userType).Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.UserType, &u.IsVerified, &u.LastLogin, &u.CreatedAt); err != nil {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *AuthRepository) GetByID(ctx context.Context, id int64) (*model.PortalUser, error) {
	var u model.PortalUser
	query := `SELECT userid, name, email, password, user_type, is_verified, last_login, created_at
			FROM portal_users
			WHERE userid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.UserType, &u.IsVerified, &u.LastLogin, &u.CreatedAt); err != nil {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (r *AuthRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM portal_users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TouchLastLogin stamps a successful login.
func (r *AuthRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	tag, err := r.DB.Exec(ctx, `UPDATE portal_users SET last_login=$1 WHERE userid=$2`, time.Now(), userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found")
	}
	return nil
}
