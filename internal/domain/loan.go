package domain

import "time"

const (
	LoanStatusCredited = "CREDITED"
	LoanStatusClosed   = "CLOSED"
)

// Loan represents a member's loan. Immutable once created; at most one
// credited loan may exist per member and that loan drives the schedule.
type Loan struct {
	ID        int64     `json:"id" db:"id"`
	MemberID  int64     `json:"member_id" db:"member_id"`
	CenterID  int64     `json:"center_id" db:"center_id"`
	Amount    int64     `json:"amount" db:"amount"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
