package domain

// Center represents a physical collection group of members
type Center struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Member belongs to exactly one center and holds at most one credited loan
type Member struct {
	ID       int64  `json:"id" db:"id"`
	CenterID int64  `json:"center_id" db:"center_id"`
	Name     string `json:"name" db:"name"`
	Mobile   string `json:"mobile" db:"mobile"`
}

// MemberLoanView is the members listing returned for a center:
// only members whose loan is currently credited appear
type MemberLoanView struct {
	MemberID int64  `json:"member_id" db:"member_id"`
	Name     string `json:"name" db:"name"`
	LoanID   int64  `json:"loan_id" db:"loan_id"`
	Status   string `json:"status" db:"status"`
}

// MemberWeekView carries the next pending week per member for the
// collection entry screen
type MemberWeekView struct {
	MemberID     int64  `json:"member_id"`
	LoanID       int64  `json:"loan_id"`
	Name         string `json:"name"`
	WeeklyAmount int64  `json:"weekly_amount"`
	WeekNo       int    `json:"week_no"`
}
