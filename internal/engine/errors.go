package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/ember/internal/ledger"
)

// PolicyError represents a precondition failure detected by the burn engine.
//
// Policy errors include:
//   - Not authorized: caller fails an owner/oracle identity check
//   - Paused: a burn was attempted while the engine is inactive
//   - Invalid amount: a computed or requested amount is zero
//   - Cap exceeded: the amount exceeds the configured per-cycle ceiling
//   - Insufficient balance: the external token ledger refused the destroy
//
// All policy errors are terminal for the invocation that raised them.
// The engine never retries and never partially applies a failed call.
type PolicyError struct {
	// Code identifies the failed precondition.
	Code PolicyErrorCode

	// Message is a human-readable description.
	Message string

	// Op names the operation that was refused.
	Op string

	// Caller identifies the refused caller, when identity was the issue.
	Caller string

	// Details contains additional context.
	Details map[string]string

	// cause is the underlying error, if any (e.g. the token ledger refusal).
	cause error
}

// Unwrap exposes the underlying cause for errors.As matching.
func (e *PolicyError) Unwrap() error {
	return e.cause
}

// PolicyErrorCode categorizes policy errors.
type PolicyErrorCode string

const (
	// ErrCodeNotAuthorized indicates the caller holds neither the required role.
	ErrCodeNotAuthorized PolicyErrorCode = "NOT_AUTHORIZED"

	// ErrCodePaused indicates the engine's global pause flag is set.
	ErrCodePaused PolicyErrorCode = "PAUSED"

	// ErrCodeInvalidAmount indicates a zero burn amount.
	ErrCodeInvalidAmount PolicyErrorCode = "INVALID_AMOUNT"

	// ErrCodeCapExceeded indicates the amount exceeds maxBurnPerCycle.
	ErrCodeCapExceeded PolicyErrorCode = "CAP_EXCEEDED"

	// ErrCodeInsufficientBalance indicates the token ledger refused the destroy.
	ErrCodeInsufficientBalance PolicyErrorCode = "INSUFFICIENT_BALANCE"
)

// Error implements the error interface.
func (e *PolicyError) Error() string {
	if e.Op != "" && e.Caller != "" {
		return fmt.Sprintf("%s: %s (op=%s, caller=%s)", e.Code, e.Message, e.Op, e.Caller)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotAuthorized returns true if the error is an authorization failure.
// Uses errors.As to handle wrapped errors.
func IsNotAuthorized(err error) bool {
	return hasCode(err, ErrCodeNotAuthorized)
}

// IsPaused returns true if the error is a pause-flag failure.
func IsPaused(err error) bool {
	return hasCode(err, ErrCodePaused)
}

// IsInvalidAmount returns true if the error is a zero-amount failure.
func IsInvalidAmount(err error) bool {
	return hasCode(err, ErrCodeInvalidAmount)
}

// IsCapExceeded returns true if the error is a cap-ceiling failure.
func IsCapExceeded(err error) bool {
	return hasCode(err, ErrCodeCapExceeded)
}

// IsInsufficientBalance returns true if the error is a refused destroy.
// Matches both PolicyError with ErrCodeInsufficientBalance and the token
// ledger's own InsufficientBalanceError, wrapped or not.
func IsInsufficientBalance(err error) bool {
	if hasCode(err, ErrCodeInsufficientBalance) {
		return true
	}
	var ib *ledger.InsufficientBalanceError
	return errors.As(err, &ib)
}

func hasCode(err error, code PolicyErrorCode) bool {
	var pe *PolicyError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// NewNotAuthorizedError creates a PolicyError for a failed identity check.
func NewNotAuthorizedError(op, caller, requiredRole string) *PolicyError {
	return &PolicyError{
		Code:    ErrCodeNotAuthorized,
		Message: fmt.Sprintf("caller does not hold the %s role", requiredRole),
		Op:      op,
		Caller:  caller,
		Details: map[string]string{"required_role": requiredRole},
	}
}

// NewPausedError creates a PolicyError for an operation refused while paused.
func NewPausedError(op string) *PolicyError {
	return &PolicyError{
		Code:    ErrCodePaused,
		Message: "engine is paused",
		Op:      op,
	}
}

// NewInvalidAmountError creates a PolicyError for a zero burn amount.
func NewInvalidAmountError(op string) *PolicyError {
	return &PolicyError{
		Code:    ErrCodeInvalidAmount,
		Message: "burn amount must be greater than zero",
		Op:      op,
	}
}

// NewCapExceededError creates a PolicyError for an amount over the ceiling.
func NewCapExceededError(op string, amount, cap uint64) *PolicyError {
	return &PolicyError{
		Code:    ErrCodeCapExceeded,
		Message: fmt.Sprintf("burn amount exceeds per-cycle cap (%d > %d)", amount, cap),
		Op:      op,
		Details: map[string]string{
			"amount": fmt.Sprintf("%d", amount),
			"cap":    fmt.Sprintf("%d", cap),
		},
	}
}

// NewInsufficientBalanceError wraps a token ledger refusal as a PolicyError.
// The original ledger error stays reachable through errors.As via Unwrap.
func NewInsufficientBalanceError(op, caller string, cause *ledger.InsufficientBalanceError) *PolicyError {
	return &PolicyError{
		Code:    ErrCodeInsufficientBalance,
		Message: "token ledger refused destroy",
		Op:      op,
		Caller:  caller,
		Details: map[string]string{
			"balance":   fmt.Sprintf("%d", cause.Balance),
			"requested": fmt.Sprintf("%d", cause.Requested),
		},
		cause: cause,
	}
}
