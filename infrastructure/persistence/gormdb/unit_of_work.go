package gormdb

import (
	"context"
	"fmt"

	"jsonview/domain/shared"
	"jsonview/infrastructure/persistence"

	"gorm.io/gorm"
)

// UnitOfWork runs a function inside one database transaction carried by the context.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Execute commits when fn succeeds and rolls back otherwise.
// Calls made while a transaction is already in ctx join it.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if persistence.TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if err := fn(persistence.ContextWithTx(ctx, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		if isLockConflict(err) {
			return shared.NewConflictError("transaction", "transaction conflicted with a concurrent update, please retry")
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
