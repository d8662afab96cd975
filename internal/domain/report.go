package domain

import (
	"time"

	"github.com/google/uuid"
)

// TallyEntry is one paid collection in the daily tally
type TallyEntry struct {
	CenterName string    `json:"center_name" db:"center_name"`
	MemberName string    `json:"member_name" db:"member_name"`
	Amount     int64     `json:"amount" db:"amount"`
	PaidAt     time.Time `json:"paid_at" db:"paid_at"`
}

// DailyTally aggregates all collections recorded on one calendar date
type DailyTally struct {
	Date    string       `json:"date"`
	Entries []TallyEntry `json:"entries"`
	Total   int64        `json:"total"`
}

// UnpaidEntry is a schedule row due on a date that is not fully settled;
// covers both untouched and partially paid weeks
type UnpaidEntry struct {
	ScheduleID     uuid.UUID `json:"schedule_id" db:"schedule_id"`
	CenterName     string    `json:"center_name" db:"center_name"`
	MemberName     string    `json:"member_name" db:"member_name"`
	Mobile         string    `json:"mobile" db:"mobile"`
	ExpectedAmount int64     `json:"expected_amount" db:"expected_amount"`
	PaidAmount     int64     `json:"paid_amount" db:"paid_amount"`
	AmountDue      int64     `json:"amount_due" db:"amount_due"`
}
