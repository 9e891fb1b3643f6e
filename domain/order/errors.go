/*
Package order - 订单领域错误定义

构造函数在创建时捕获堆栈（shared.CaptureStack(3)），错误链可追溯到
order 哨兵错误和 shared 分类哨兵。
*/
package order

import (
	"errors"
	"fmt"

	"jsonview/domain/shared"
)

var (
	// ErrInvalidBucket 订单 bucket 为空
	ErrInvalidBucket = errors.New("order bucket is null or empty")

	// ErrInvalidOrderStateTransition 无效的订单状态转换
	ErrInvalidOrderStateTransition = errors.New("invalid order state transition")

	// ErrOwnerChange 订单归属用户不可变更
	ErrOwnerChange = errors.New("order owner cannot change")
)

func NewInvalidBucketError() error {
	return &orderDomainError{
		sentinel: ErrInvalidBucket,
		kind:     shared.ErrInvalidInput,
		field:    "orderBucket",
		message:  "Order dto: order bucket is null or empty",
		stack:    shared.CaptureStack(3),
	}
}

func NewInvalidStateTransitionError(from, to Status) error {
	return &orderDomainError{
		sentinel: ErrInvalidOrderStateTransition,
		kind:     shared.ErrConflict,
		message:  fmt.Sprintf("cannot transition order from %s to %s", from, to),
		stack:    shared.CaptureStack(3),
	}
}

func NewOwnerChangeError(current, requested int64) error {
	return &orderDomainError{
		sentinel: ErrOwnerChange,
		kind:     shared.ErrInvalidInput,
		field:    "userId",
		message:  fmt.Sprintf("order owned by user %d cannot be attached to user %d", current, requested),
		stack:    shared.CaptureStack(3),
	}
}

// orderDomainError 订单领域错误（带堆栈）
type orderDomainError struct {
	sentinel error // order 哨兵
	kind     error // shared 分类哨兵
	field    string
	message  string
	stack    []uintptr
}

func (e *orderDomainError) Error() string   { return e.message }
func (e *orderDomainError) Unwrap() []error { return []error{e.sentinel, e.kind} }
func (e *orderDomainError) Stack() []string { return shared.FormatStack(e.stack) }

// Field returns the input field the error refers to, if any.
func (e *orderDomainError) Field() string { return e.field }
