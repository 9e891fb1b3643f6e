package user

import (
	"context"

	"jsonview/domain/shared"
)

// Repository User repository interface
//
// Implementations join the transaction carried by ctx when one is active
// (see shared.UnitOfWork).
type Repository interface {
	// FindPageOfNonDeleted returns one page of users with deleted=false.
	// Orders are not loaded. Ordering is by id ascending.
	FindPageOfNonDeleted(ctx context.Context, page shared.PageRequest) (*shared.Page[*User], error)

	// FindNonDeletedByID fails with a not-found error when no user with
	// deleted=false has this id.
	FindNonDeletedByID(ctx context.Context, id int64, opts ...LoadOption) (*User, error)

	// FindByID includes soft-deleted users.
	FindByID(ctx context.Context, id int64, opts ...LoadOption) (*User, error)

	// Save inserts a new user or performs a versioned update of an existing one,
	// inserting new orders and updating the status of changed ones.
	Save(ctx context.Context, user *User) error
}

// LoadOptions controls what a finder loads besides the user row.
type LoadOptions struct {
	Orders bool
}

type LoadOption func(*LoadOptions)

// WithOrders loads the user's full order collection, whatever the order status.
func WithOrders() LoadOption {
	return func(o *LoadOptions) { o.Orders = true }
}

// ApplyLoadOptions folds opts into a LoadOptions value.
func ApplyLoadOptions(opts ...LoadOption) LoadOptions {
	var o LoadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
