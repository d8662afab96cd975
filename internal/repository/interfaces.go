package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sukumar807253/sindhuja-colloction/internal/domain"
)

// MemberRepository defines the interface for center, member and loan reads
type MemberRepository interface {
	// Centers lists all centers ordered by name
	Centers(ctx context.Context) ([]*domain.Center, error)

	// GetCenter retrieves a single center
	GetCenter(ctx context.Context, centerID int64) (*domain.Center, error)

	// MembersWithActiveLoan lists a center's members holding a credited loan
	MembersWithActiveLoan(ctx context.Context, centerID int64) ([]*domain.MemberLoanView, error)

	// ActiveLoan resolves the member's single credited loan. Returns
	// (nil, nil) when the member has none and an error when more than
	// one credited loan exists.
	ActiveLoan(ctx context.Context, memberID int64) (*domain.Loan, error)

	// GetLoan retrieves a loan by ID
	GetLoan(ctx context.Context, loanID int64) (*domain.Loan, error)
}

// ScheduleRepository defines the interface for collection schedule operations
type ScheduleRepository interface {
	// InsertRows bulk-inserts schedule rows, all-or-nothing
	InsertRows(ctx context.Context, rows []*domain.ScheduleRow) error

	// NextPendingRow returns the pending row with the smallest week_no
	// for a loan, or (nil, nil) when none remains
	NextPendingRow(ctx context.Context, loanID int64) (*domain.ScheduleRow, error)

	// MarkRowPaid settles a row conditionally: the update only lands if
	// the row is still pending. Returns false when the row was already
	// taken.
	MarkRowPaid(ctx context.Context, rowID uuid.UUID, paidAmount int64, paidAt time.Time) (bool, error)

	// DeleteForLoan removes every schedule row of a loan
	DeleteForLoan(ctx context.Context, loanID int64) (int64, error)

	// DeleteForCenter removes every schedule row of a center's loans
	DeleteForCenter(ctx context.Context, centerID int64) (int64, error)

	// PaidOn lists collections whose paid_at falls on the given date
	PaidOn(ctx context.Context, date time.Time) ([]*domain.TallyEntry, error)

	// UnpaidOn lists rows scheduled on the date that are not fully paid
	UnpaidOn(ctx context.Context, date time.Time) ([]*domain.UnpaidEntry, error)

	// SaveDenominations records a batch's note counts by face value
	SaveDenominations(ctx context.Context, batchID uuid.UUID, notes map[int64]int64) error
}

// UserRepository defines the interface for account lookups
type UserRepository interface {
	// ByEmail retrieves a user account by email
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}
