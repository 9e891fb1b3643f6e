/*
Package shared - 领域层共享错误定义

领域层定义哨兵错误(sentinel errors)，供 errors.Is() 判断；DomainError 在创建时
捕获堆栈，打印日志时才格式化。领域错误不包含 HTTP 状态码等传输层概念。
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound 资源未找到
	ErrNotFound = errors.New("not found")

	// ErrConflict 资源冲突（并发修改、唯一约束冲突）
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput 无效输入（参数校验失败）
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError 领域错误 - 携带业务上下文和堆栈的结构化错误
type DomainError struct {
	// Err 底层哨兵错误，用于 errors.Is() 判断
	Err error

	// Entity 发生错误的实体名称（如 "order", "user"）
	Entity string

	// Message 人类可读的错误描述
	Message string

	stack []uintptr
}

func (e *DomainError) Error() string   { return e.Message }
func (e *DomainError) Unwrap() error   { return e.Err }
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// Finding is one failed validation rule. Field is a dotted path such as
// "userDto.email".
type Finding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every finding of one validation pass.
type ValidationError struct {
	Findings []Finding
	stack    []uintptr
}

// NewValidationError returns nil when findings is empty.
func NewValidationError(findings []Finding) error {
	if len(findings) == 0 {
		return nil
	}
	return &ValidationError{Findings: findings, stack: CaptureStack(3)}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Findings))
	for _, f := range e.Findings {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error   { return ErrInvalidInput }
func (e *ValidationError) Stack() []string { return FormatStack(e.stack) }

// CaptureStack 捕获当前调用栈（导出供子领域包使用）
// skip: 跳过的帧数（通常为 3：Callers, CaptureStack, NewXxxError）
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack 格式化堆栈帧为字符串切片，过滤 runtime 内部帧，最多返回 10 帧
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// NewNotFoundError 创建"未找到"领域错误
func NewNotFoundError(entity, message string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewConflictError 创建"冲突"领域错误
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// Stacker 可提供堆栈的错误接口，API 层用它统一提取堆栈
type Stacker interface {
	Stack() []string
}
