package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation           = errors.New("invalid input")
	ErrDenominationMismatch = errors.New("denomination total does not match collection total")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrCenterNotFound       = errors.New("center not found")
	ErrNoPendingWeek        = errors.New("no pending week for loan")
	ErrMultipleActiveLoans  = errors.New("member has more than one credited loan")
	ErrInvalidCredentials   = errors.New("invalid login credentials")
	ErrAccountBlocked       = errors.New("account blocked")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeDenominationMismatch = "DENOMINATION_MISMATCH"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeMultipleActiveLoans  = "MULTIPLE_ACTIVE_LOANS"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeAccountBlocked       = "ACCOUNT_BLOCKED"
	ErrCodeDatabaseError        = "DATABASE_ERROR"
	ErrCodeCacheError           = "CACHE_ERROR"
)

// CodeOf extracts the business error code, or empty for plain errors
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Wrap common errors with business context

func WrapValidation(message string) *BusinessError {
	return NewBusinessError(ErrCodeValidation, message, ErrValidation)
}

// WrapDenominationMismatch carries both totals so the caller can see
// exactly how far off the counted notes are
func WrapDenominationMismatch(totalNotes, totalCollection int64) *BusinessError {
	return NewBusinessError(
		ErrCodeDenominationMismatch,
		fmt.Sprintf("Denomination total mismatch: %d vs %d", totalNotes, totalCollection),
		ErrDenominationMismatch,
	)
}

// WrapUnknownLoan is a validation failure: schedule generation was asked
// for a loan ID that does not resolve to an existing loan
func WrapUnknownLoan(loanID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("Loan %d does not resolve to an existing loan", loanID),
		ErrLoanNotFound,
	)
}

func WrapCenterNotFound(centerID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Center with ID %d not found", centerID),
		ErrCenterNotFound,
	)
}

func WrapMultipleActiveLoans(memberID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeMultipleActiveLoans,
		fmt.Sprintf("Member %d has more than one credited loan", memberID),
		ErrMultipleActiveLoans,
	)
}

func WrapInvalidCredentials() *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidCredentials,
		"Invalid login credentials",
		ErrInvalidCredentials,
	)
}

func WrapAccountBlocked(email string) *BusinessError {
	return NewBusinessError(
		ErrCodeAccountBlocked,
		fmt.Sprintf("Account %s is blocked", email),
		ErrAccountBlocked,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
