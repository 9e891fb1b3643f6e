package errors

import (
	"errors"
	"fmt"

	"jsonview/domain/shared"
	"jsonview/domain/user"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// 业务错误码
	CodeUserNotFound           ErrorCode = "USER_NOT_FOUND"
	CodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
)

// AppError 应用错误
type AppError struct {
	Code     ErrorCode        `json:"code"`
	Message  string           `json:"message"`
	Findings []shared.Finding `json:"findings,omitempty"`
	Err      error            `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

// Validation wraps a single finding, used for transport-level input such as path ids.
func Validation(field, message string) *AppError {
	return &AppError{
		Code:     CodeValidation,
		Message:  message,
		Findings: []shared.Finding{{Field: field, Message: message}},
	}
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// FromDomainError 将领域错误映射为应用错误
//
// Classification uses the shared sentinels. Unclassified errors become
// INTERNAL_ERROR with a generic message.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var ve *shared.ValidationError
	if errors.As(err, &ve) {
		return &AppError{Code: CodeValidation, Message: "validation failed", Findings: ve.Findings, Err: err}
	}

	switch {
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, user.ErrUserDeleted):
		return Wrap(err, CodeUserNotFound, err.Error())
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, user.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentModification, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
