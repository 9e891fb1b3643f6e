package mocks

import (
	"context"
	"sync"

	"jsonview/domain/shared"
	"jsonview/domain/user"
)

// UserRepository is a hand-written user.Repository double. Each method
// delegates to the matching func field when set and records the call.
type UserRepository struct {
	FindPageFn           func(ctx context.Context, page shared.PageRequest) (*shared.Page[*user.User], error)
	FindNonDeletedByIDFn func(ctx context.Context, id int64, opts user.LoadOptions) (*user.User, error)
	FindByIDFn           func(ctx context.Context, id int64, opts user.LoadOptions) (*user.User, error)
	SaveFn               func(ctx context.Context, u *user.User) error

	mu    sync.Mutex
	calls map[string]int
	saved []*user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{calls: make(map[string]int)}
}

func (r *UserRepository) record(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[method]++
}

// Calls returns how many times method was invoked.
func (r *UserRepository) Calls(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

// Saved returns every user passed to Save, in call order.
func (r *UserRepository) Saved() []*user.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*user.User(nil), r.saved...)
}

func (r *UserRepository) FindPageOfNonDeleted(ctx context.Context, page shared.PageRequest) (*shared.Page[*user.User], error) {
	r.record("FindPageOfNonDeleted")
	if r.FindPageFn == nil {
		return shared.NewPage[*user.User](nil, page, 0), nil
	}
	return r.FindPageFn(ctx, page)
}

func (r *UserRepository) FindNonDeletedByID(ctx context.Context, id int64, opts ...user.LoadOption) (*user.User, error) {
	r.record("FindNonDeletedByID")
	if r.FindNonDeletedByIDFn == nil {
		return nil, user.NewUserNotFoundError(id)
	}
	return r.FindNonDeletedByIDFn(ctx, id, user.ApplyLoadOptions(opts...))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64, opts ...user.LoadOption) (*user.User, error) {
	r.record("FindByID")
	if r.FindByIDFn == nil {
		return nil, user.NewUserNotFoundError(id)
	}
	return r.FindByIDFn(ctx, id, user.ApplyLoadOptions(opts...))
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	r.record("Save")
	r.mu.Lock()
	r.saved = append(r.saved, u)
	r.mu.Unlock()
	if r.SaveFn == nil {
		return nil
	}
	return r.SaveFn(ctx, u)
}

var _ user.Repository = (*UserRepository)(nil)
