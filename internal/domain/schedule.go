package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ScheduleStatusPending = "pending"
	ScheduleStatusPaid    = "paid"
)

// ScheduleRow is one week's expected/paid collection record for a loan.
// Exactly one row exists per (loan_id, week_no); rows move from pending
// to paid exactly once and only the administrative clear removes them.
type ScheduleRow struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	LoanID         int64      `json:"loan_id" db:"loan_id"`
	WeekNo         int        `json:"week_no" db:"week_no"`
	CollectionDate time.Time  `json:"collection_date" db:"collection_date"`
	ExpectedAmount int64      `json:"expected_amount" db:"expected_amount"`
	PaidAmount     int64      `json:"paid_amount" db:"paid_amount"`
	Status         string     `json:"status" db:"status"` // pending, paid
	PaidAt         *time.Time `json:"paid_at,omitempty" db:"paid_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// DTOs for requests and responses

type RegisterScheduleRequest struct {
	CenterID  int64  `json:"center_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type RegisterScheduleResponse struct {
	CenterID     int64 `json:"center_id"`
	LoansCovered int   `json:"loans_covered"`
	RowsInserted int   `json:"rows_inserted"`
}

type ClearScheduleResponse struct {
	CenterID    int64 `json:"center_id"`
	RowsDeleted int64 `json:"rows_deleted"`
}
