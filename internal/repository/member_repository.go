package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
	customError "github.com/sukumar807253/sindhuja-colloction/pkg/errors"
)

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Centers(ctx context.Context) ([]*domain.Center, error) {
	query := `
		SELECT id, name
		FROM centers
		ORDER BY name
	`

	var centers []*domain.Center
	err := r.db.SelectContext(ctx, &centers, query)
	if err != nil {
		return nil, err
	}

	return centers, nil
}

func (r *memberRepository) GetCenter(ctx context.Context, centerID int64) (*domain.Center, error) {
	query := `
		SELECT id, name
		FROM centers
		WHERE id = $1
	`

	var center domain.Center
	err := r.db.GetContext(ctx, &center, query, centerID)
	if err != nil {
		return nil, err
	}

	return &center, nil
}

func (r *memberRepository) MembersWithActiveLoan(ctx context.Context, centerID int64) ([]*domain.MemberLoanView, error) {
	query := `
		SELECT m.id AS member_id, m.name, l.id AS loan_id, l.status
		FROM members m
		JOIN loans l ON l.member_id = m.id AND l.status = $2
		WHERE m.center_id = $1
		ORDER BY m.name
	`

	var members []*domain.MemberLoanView
	err := r.db.SelectContext(ctx, &members, query, centerID, domain.LoanStatusCredited)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *memberRepository) ActiveLoan(ctx context.Context, memberID int64) (*domain.Loan, error) {
	query := `
		SELECT id, member_id, center_id, amount, start_date, status, created_at
		FROM loans
		WHERE member_id = $1 AND status = $2
	`

	var loans []*domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, memberID, domain.LoanStatusCredited)
	if err != nil {
		return nil, err
	}

	switch len(loans) {
	case 0:
		return nil, nil
	case 1:
		return loans[0], nil
	default:
		return nil, customError.WrapMultipleActiveLoans(memberID)
	}
}

func (r *memberRepository) GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error) {
	query := `
		SELECT id, member_id, center_id, amount, start_date, status, created_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	err := r.db.GetContext(ctx, &loan, query, loanID)
	if err != nil {
		return nil, err
	}

	return &loan, nil
}
