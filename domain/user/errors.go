/*
Package user 定义用户领域错误。
*/
package user

import (
	"errors"
	"fmt"

	"jsonview/domain/shared"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserDeleted            = errors.New("user is deleted")
	ErrConcurrentModification = errors.New("user was modified by another transaction, please retry")
	ErrDuplicateIdentity      = errors.New("username or email already exists")
	ErrInvalidContact         = errors.New("username and email must not be blank")
	ErrOrdersNotLoaded        = errors.New("user orders are not loaded")
)

func NewUserNotFoundError(userID int64) error {
	return &userDomainError{
		sentinel: ErrUserNotFound,
		kind:     shared.ErrNotFound,
		message:  fmt.Sprintf("User not found for id: %d", userID),
		stack:    shared.CaptureStack(3),
	}
}

// NewUserDeletedError is a not-found: soft-deleted users are not addressable.
func NewUserDeletedError(userID int64) error {
	return &userDomainError{
		sentinel: ErrUserDeleted,
		kind:     shared.ErrNotFound,
		message:  fmt.Sprintf("User not found for id: %d", userID),
		stack:    shared.CaptureStack(3),
	}
}

func NewConcurrentModificationError(userID int64) error {
	return &userDomainError{
		sentinel: ErrConcurrentModification,
		kind:     shared.ErrConflict,
		message:  fmt.Sprintf("user %d was modified by another transaction, please retry", userID),
		stack:    shared.CaptureStack(3),
	}
}

func NewDuplicateIdentityError() error {
	return &userDomainError{
		sentinel: ErrDuplicateIdentity,
		kind:     shared.ErrConflict,
		message:  "username or email already exists",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidContactError(field string) error {
	return &userDomainError{
		sentinel: ErrInvalidContact,
		kind:     shared.ErrInvalidInput,
		field:    field,
		message:  field + " is null or empty",
		stack:    shared.CaptureStack(3),
	}
}

func NewOrdersNotLoadedError(userID int64) error {
	return &userDomainError{
		sentinel: ErrOrdersNotLoaded,
		message:  fmt.Sprintf("orders of user %d must be loaded before delete", userID),
		stack:    shared.CaptureStack(3),
	}
}

type userDomainError struct {
	sentinel error
	kind     error
	field    string
	message  string
	stack    []uintptr
}

func (e *userDomainError) Error() string { return e.message }

func (e *userDomainError) Unwrap() []error {
	if e.kind == nil {
		return []error{e.sentinel}
	}
	return []error{e.sentinel, e.kind}
}

func (e *userDomainError) Stack() []string { return shared.FormatStack(e.stack) }
