package mocks

import (
	"context"
	"sync/atomic"

	"jsonview/domain/shared"
)

// UnitOfWork runs fn directly without a real transaction and counts executions.
type UnitOfWork struct {
	executions atomic.Int32
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	u.executions.Add(1)
	return fn(ctx)
}

func (u *UnitOfWork) Executions() int {
	return int(u.executions.Load())
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
