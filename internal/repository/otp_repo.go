package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	DB *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{DB: db}
}

func (r *OTPRepository) Create(ctx context.Context, rec *model.OTPRecord) (int64, error) {
	var id int64
	query := `INSERT INTO otp_store (email, otp, otp_type, user_data, expires_at, is_used, created_at)
			VALUES ($1, $2, $3, $4, $5, false, $6) RETURNING otpid`
	if err := r.DB.QueryRow(ctx, query, rec.Email, rec.Code, rec.OTPType, rec.UserData, rec.ExpiresAt, rec.CreatedAt).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// FindActive returns the newest unconsumed, unexpired record matching
// (email, code, type), or (nil, nil) when no such record exists. The
// single-use and expiry checks live in the query itself.
func (r *OTPRepository) FindActive(ctx context.Context, email, code, otpType string, now time.Time) (*model.OTPRecord, error) {
	var rec model.OTPRecord
	query := `SELECT otpid, email, otp, otp_type, user_data, expires_at, is_used, created_at
			FROM otp_store
			WHERE email=$1 AND otp=$2 AND otp_type=$3 AND is_used=false AND expires_at > $4
			ORDER BY created_at DESC
			LIMIT 1`
	err := r.DB.QueryRow(ctx, query, email, code, otpType, now).
		Scan(&rec.OTPID, &rec.Email, &rec.Code, &rec.OTPType, &rec.UserData, &rec.ExpiresAt, &rec.IsUsed, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// MarkUsed consumes a code. A second call for the same otpid reports an error
// so verification can never succeed twice.
func (r *OTPRepository) MarkUsed(ctx context.Context, otpID int64) error {
	tag, err := r.DB.Exec(ctx, `UPDATE otp_store SET is_used=true WHERE otpid=$1 AND is_used=false`, otpID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("otp already consumed")
	}
	return nil
}

// LatestPayload returns the user_data of the newest unconsumed record for
// (email, type), expired or not, so a resend can carry the original signup
// data forward. (nil, nil) when no prior record exists.
func (r *OTPRepository) LatestPayload(ctx context.Context, email, otpType string) ([]byte, error) {
	var data []byte
	query := `SELECT user_data FROM otp_store
			WHERE email=$1 AND otp_type=$2 AND is_used=false
			ORDER BY created_at DESC
			LIMIT 1`
	err := r.DB.QueryRow(ctx, query, email, otpType).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
