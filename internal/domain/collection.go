package domain

import "github.com/google/uuid"

// Skip reasons reported per batch item
const (
	SkipReasonNoLoan        = "no_loan"
	SkipReasonNoPendingWeek = "no_pending_week"
)

// CollectionItem is one member's cash submission inside a batch
type CollectionItem struct {
	MemberID int64 `json:"member_id" validate:"required,gt=0"`
	Amount   int64 `json:"amount"`
}

// CollectionBatch is a transient set of per-member payments submitted
// together. Denomination maps note face value to count and, when present,
// must total exactly the collected cash before anything is applied.
type CollectionBatch struct {
	Collection   []CollectionItem `json:"collection" validate:"required,min=1,dive"`
	Denomination map[int64]int64  `json:"denomination,omitempty"`
}

// TotalCollection sums the batch amounts. Validation rejects negatives
// before this is used.
func (b *CollectionBatch) TotalCollection() int64 {
	var total int64
	for _, item := range b.Collection {
		total += item.Amount
	}
	return total
}

// AppliedPayment records one schedule row settled by a batch
type AppliedPayment struct {
	MemberID  int64 `json:"member_id"`
	LoanID    int64 `json:"loan_id"`
	WeekNo    int   `json:"week_no"`
	Amount    int64 `json:"amount"`
	FullyPaid bool  `json:"fully_paid"`
}

// SkippedPayment records a batch item that could not be applied
type SkippedPayment struct {
	MemberID int64  `json:"member_id"`
	Reason   string `json:"reason"`
}

// BatchResult summarises a processed batch: applied count plus the
// per-member outcomes
type BatchResult struct {
	BatchID      uuid.UUID        `json:"batch_id"`
	Applied      int              `json:"applied"`
	AppliedItems []AppliedPayment `json:"applied_items"`
	Skipped      []SkippedPayment `json:"skipped"`
}
