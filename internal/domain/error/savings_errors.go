// Package error defines domain-specific errors for the Money Saver application.
package error

import "errors"

// Savings domain errors.
var (
	// ErrPlanNotFound is returned when a saving plan is not found in the system.
	ErrPlanNotFound = errors.New("saving plan not found")

	// ErrWeeklyAmountNotFound is returned when a weekly amount is not found for a plan.
	ErrWeeklyAmountNotFound = errors.New("weekly amount not found")

	// ErrPlanNotOwned is returned when the plan exists but belongs to a different user.
	ErrPlanNotOwned = errors.New("saving plan does not belong to user")

	// ErrInvalidPlanName is returned when the plan name is empty or too long.
	ErrInvalidPlanName = errors.New("invalid plan name")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidWeekCount is returned when the number of weeks is outside (0, 104].
	ErrInvalidWeekCount = errors.New("invalid number of weeks")

	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date must not precede start date")

	// ErrInvalidWeeklyAmount is returned when a weekly installment amount is zero or negative.
	ErrInvalidWeeklyAmount = errors.New("invalid weekly amount")

	// ErrWeekNumberOutOfRange is returned when a week number lies outside [1, number_of_weeks].
	ErrWeekNumberOutOfRange = errors.New("week number out of range")

	// ErrDuplicateWeekNumber is returned when a week number already exists for the plan.
	ErrDuplicateWeekNumber = errors.New("duplicate week number for plan")

	// ErrAmountsExceedTarget is returned when the sum of weekly amounts exceeds the plan target.
	ErrAmountsExceedTarget = errors.New("weekly amounts exceed target amount")

	// ErrTransientStorage is returned for retryable storage failures (timeouts, broken connections).
	ErrTransientStorage = errors.New("transient storage failure")
)

// SavingsErrorCode defines error codes for savings errors.
// Format: SAV-XXYYYY where XX is category and YYYY is specific error.
type SavingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPlanName      SavingsErrorCode = "SAV-010001"
	ErrCodeInvalidTargetAmount  SavingsErrorCode = "SAV-010002"
	ErrCodeInvalidWeekCount     SavingsErrorCode = "SAV-010003"
	ErrCodeInvalidDateRange     SavingsErrorCode = "SAV-010004"
	ErrCodeInvalidWeeklyAmount  SavingsErrorCode = "SAV-010005"
	ErrCodeWeekNumberOutOfRange SavingsErrorCode = "SAV-010006"
	ErrCodeAmountsExceedTarget  SavingsErrorCode = "SAV-010007"
	ErrCodeMissingPlanFields    SavingsErrorCode = "SAV-010008"

	// Lookup/ownership errors (02XXXX)
	ErrCodePlanNotFound         SavingsErrorCode = "SAV-020001"
	ErrCodeWeeklyAmountNotFound SavingsErrorCode = "SAV-020002"
	ErrCodePlanNotOwned         SavingsErrorCode = "SAV-020003"

	// Conflict errors (03XXXX)
	ErrCodeDuplicateWeekNumber SavingsErrorCode = "SAV-030001"

	// Transient errors (04XXXX)
	ErrCodeTransientStorage SavingsErrorCode = "SAV-040001"
)

// SavingsError represents a savings error with code and message.
type SavingsError struct {
	Code    SavingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SavingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SavingsError) Unwrap() error {
	return e.Err
}

// NewSavingsError creates a new SavingsError with the given code and message.
func NewSavingsError(code SavingsErrorCode, message string, err error) *SavingsError {
	return &SavingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
