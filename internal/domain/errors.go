package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a service can return.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuthentication
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	default:
		return "internal"
	}
}

// Error is the tagged error returned at service boundaries. Message is safe to
// show to API clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewConflictError(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewAuthenticationError(message string) error {
	return &Error{Kind: KindAuthentication, Message: message}
}

// NewInternalError hides cause behind the generic client message.
func NewInternalError(cause error) error {
	return &Error{Kind: KindInternal, Message: MsgServerError, Err: cause}
}

// KindOf reports the kind of err. Errors that were never tagged are internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return de.Message
	}
	return MsgServerError
}

// ErrDuplicateKey is returned by record stores when a unique index rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

const (
	MsgServerError = "Server error"

	MsgUsernameRequired   = "Username is required"
	MsgValidEmailRequired = "Valid email is required"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgPasswordRequired   = "Password is required"
	MsgUserExists         = "Username or email already exists"
	MsgInvalidCredentials = "Invalid Username and password"

	MsgEmployeeExists     = "Employee with this email already exists"
	MsgInvalidEmployeeID  = "Invalid employee ID"
	MsgEmployeeIDRequired = "Employee ID is required"
	MsgEmployeeNotFound   = "Employee not found"
	MsgNoUpdateData       = "No update data provided"
	MsgSalaryNotNumber    = "Salary must be a number"
	MsgDateInvalid        = "Date of joining must be a valid date"
	MsgInvalidBody        = "Invalid request body"
)
