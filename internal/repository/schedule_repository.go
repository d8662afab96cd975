package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) InsertRows(ctx context.Context, rows []*domain.ScheduleRow) error {
	query := `
		INSERT INTO collection_schedule (id, loan_id, week_no, collection_date, expected_amount, paid_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, row := range rows {
		_, err = tx.ExecContext(ctx, query,
			row.ID,
			row.LoanID,
			row.WeekNo,
			row.CollectionDate,
			row.ExpectedAmount,
			row.PaidAmount,
			row.Status,
			row.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *scheduleRepository) NextPendingRow(ctx context.Context, loanID int64) (*domain.ScheduleRow, error) {
	query := `
		SELECT id, loan_id, week_no, collection_date, expected_amount, paid_amount, status, paid_at, created_at
		FROM collection_schedule
		WHERE loan_id = $1 AND status = $2
		ORDER BY week_no
		LIMIT 1
	`

	var row domain.ScheduleRow
	err := r.db.GetContext(ctx, &row, query, loanID, domain.ScheduleStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &row, nil
}

func (r *scheduleRepository) MarkRowPaid(ctx context.Context, rowID uuid.UUID, paidAmount int64, paidAt time.Time) (bool, error) {
	query := `
		UPDATE collection_schedule
		SET paid_amount = $2, status = $3, paid_at = $4
		WHERE id = $1 AND status = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		rowID,
		paidAmount,
		domain.ScheduleStatusPaid,
		paidAt,
		domain.ScheduleStatusPending,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

func (r *scheduleRepository) DeleteForLoan(ctx context.Context, loanID int64) (int64, error) {
	query := `
		DELETE FROM collection_schedule
		WHERE loan_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, loanID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *scheduleRepository) DeleteForCenter(ctx context.Context, centerID int64) (int64, error) {
	query := `
		DELETE FROM collection_schedule
		WHERE loan_id IN (SELECT id FROM loans WHERE center_id = $1)
	`

	result, err := r.db.ExecContext(ctx, query, centerID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *scheduleRepository) PaidOn(ctx context.Context, date time.Time) ([]*domain.TallyEntry, error) {
	query := `
		SELECT c.name AS center_name, m.name AS member_name, cs.paid_amount AS amount, cs.paid_at
		FROM collection_schedule cs
		JOIN loans l ON l.id = cs.loan_id
		JOIN members m ON m.id = l.member_id
		JOIN centers c ON c.id = m.center_id
		WHERE cs.status = $1 AND DATE(cs.paid_at) = DATE($2)
		ORDER BY cs.paid_at
	`

	var entries []*domain.TallyEntry
	err := r.db.SelectContext(ctx, &entries, query, domain.ScheduleStatusPaid, date)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *scheduleRepository) UnpaidOn(ctx context.Context, date time.Time) ([]*domain.UnpaidEntry, error) {
	query := `
		SELECT cs.id AS schedule_id, c.name AS center_name, m.name AS member_name, m.mobile,
		       cs.expected_amount, cs.paid_amount, cs.expected_amount - cs.paid_amount AS amount_due
		FROM collection_schedule cs
		JOIN loans l ON l.id = cs.loan_id
		JOIN members m ON m.id = l.member_id
		JOIN centers c ON c.id = m.center_id
		WHERE cs.collection_date = DATE($1) AND cs.paid_amount < cs.expected_amount
		ORDER BY c.name, m.name
	`

	var entries []*domain.UnpaidEntry
	err := r.db.SelectContext(ctx, &entries, query, date)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *scheduleRepository) SaveDenominations(ctx context.Context, batchID uuid.UUID, notes map[int64]int64) error {
	query := `
		INSERT INTO denominations (id, batch_id, face_value, note_count, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for faceValue, count := range notes {
		_, err = tx.ExecContext(ctx, query, uuid.New(), batchID, faceValue, count, now)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
