package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProposalRepository struct {
	DB *pgxpool.Pool
}

func NewProposalRepository(db *pgxpool.Pool) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

func (r *ProposalRepository) Create(ctx context.Context, p *model.Proposal) (int64, error) {
	var id int64
	query := `INSERT INTO proposals (agencyid, title, description, scheme_name, amount, district, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING proposalid`
	if err := r.DB.QueryRow(ctx, query, p.AgencyID, p.Title, p.Description, p.SchemeName, p.Amount, p.District, model.ProposalPending, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id int64) (*model.Proposal, error) {
	var p model.Proposal
	query := `SELECT proposalid, agencyid, title, description, scheme_name, amount, district, status, created_at
			FROM proposals WHERE proposalid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&p.ProposalID, &p.AgencyID, &p.Title, &p.Description, &p.SchemeName, &p.Amount, &p.District, &p.Status, &p.CreatedAt); err != nil {
		return nil, errors.New("proposal not found")
	}
	return &p, nil
}

func (r *ProposalRepository) ListByAgency(ctx context.Context, agencyID int64) ([]model.Proposal, error) {
	query := `SELECT proposalid, agencyid, title, description, scheme_name, amount, district, status, created_at
			FROM proposals WHERE agencyid=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, agencyID)
}

func (r *ProposalRepository) ListAll(ctx context.Context) ([]model.Proposal, error) {
	query := `SELECT proposalid, agencyid, title, description, scheme_name, amount, district, status, created_at
			FROM proposals ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *ProposalRepository) list(ctx context.Context, query string, args ...any) ([]model.Proposal, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Proposal{}
	for rows.Next() {
		var p model.Proposal
		if err := rows.Scan(&p.ProposalID, &p.AgencyID, &p.Title, &p.Description, &p.SchemeName, &p.Amount, &p.District, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// SetStatus records the outcome of a review on the proposal row itself.
// Only pending proposals may transition.
func (r *ProposalRepository) SetStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE proposals SET status=$1 WHERE proposalid=$2 AND status=$3`
	tag, err := r.DB.Exec(ctx, query, status, id, model.ProposalPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("proposal not found or already reviewed")
	}
	return nil
}

// CreateReview stores the admin's decision in agency_proposals.
func (r *ProposalRepository) CreateReview(ctx context.Context, rev *model.ProposalReview) (int64, error) {
	var id int64
	query := `INSERT INTO agency_proposals (proposalid, reviewerid, decision, comments, reviewed_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING reviewid`
	if err := r.DB.QueryRow(ctx, query, rev.ProposalID, rev.ReviewerID, rev.Decision, rev.Comments, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ProposalRepository) ListReviews(ctx context.Context, proposalID int64) ([]model.ProposalReview, error) {
	query := `SELECT reviewid, proposalid, reviewerid, decision, comments, reviewed_at
			FROM agency_proposals WHERE proposalid=$1 ORDER BY reviewed_at DESC`
	rows, err := r.DB.Query(ctx, query, proposalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProposalReview{}
	for rows.Next() {
		var rev model.ProposalReview
		if err := rows.Scan(&rev.ReviewID, &rev.ProposalID, &rev.ReviewerID, &rev.Decision, &rev.Comments, &rev.ReviewedAt); err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, nil
}
