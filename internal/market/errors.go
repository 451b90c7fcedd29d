package market

import (
	"errors"
	"fmt"
)

type ErrorClass string

const (
	ValidationError       ErrorClass = "validation"
	AuthorizationError    ErrorClass = "authorization"
	StateConflictError    ErrorClass = "state_conflict"
	TransferRejectedError ErrorClass = "transfer_rejected"
)

// Error carries the class the caller needs to decide whether a retry makes
// sense, and a stable machine-readable reason.
type Error struct {
	Class  ErrorClass
	Reason string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.cause)
	}

	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.cause
}

var (
	ErrPriceInvalid      = &Error{Class: ValidationError, Reason: "PriceInvalid"}
	ErrModeInvalid       = &Error{Class: ValidationError, Reason: "ModeInvalid"}
	ErrAssetKindInvalid  = &Error{Class: ValidationError, Reason: "AssetKindInvalid"}
	ErrWrongMode         = &Error{Class: ValidationError, Reason: "WrongMode"}
	ErrIncorrectPayment  = &Error{Class: ValidationError, Reason: "IncorrectPayment"}
	ErrBidTooLow         = &Error{Class: ValidationError, Reason: "BidTooLow"}
	ErrPercentageInvalid = &Error{Class: ValidationError, Reason: "PercentageInvalid"}

	ErrNotOwner     = &Error{Class: AuthorizationError, Reason: "NotOwner"}
	ErrUnauthorized = &Error{Class: AuthorizationError, Reason: "Unauthorized"}

	ErrListingNotFound = &Error{Class: StateConflictError, Reason: "ListingNotFound"}
	ErrListingInactive = &Error{Class: StateConflictError, Reason: "ListingInactive"}
	ErrNoBids          = &Error{Class: StateConflictError, Reason: "NoBids"}
)

func TransferRejected(cause error) *Error {
	return &Error{Class: TransferRejectedError, Reason: "TransferRejected", cause: cause}
}

// ClassOf extracts the error class, or "" for errors the engine did not
// produce.
func ClassOf(err error) ErrorClass {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}

	return ""
}
