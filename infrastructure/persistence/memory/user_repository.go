package memory

import (
	"context"
	"sort"

	"jsonview/domain/order"
	"jsonview/domain/shared"
	"jsonview/domain/user"
)

// UserRepository implements user.Repository on a Store.
type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindPageOfNonDeleted(ctx context.Context, page shared.PageRequest) (*shared.Page[*user.User], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.store.enter(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matched := r.filter(ctx, user.NotDeleted())
	total := int64(len(matched))

	start := max(0, min(page.Offset(), len(matched)))
	end := min(start+page.Size, len(matched))

	content := make([]*user.User, 0, end-start)
	for _, u := range matched[start:end] {
		content = append(content, detach(u, user.LoadOptions{}))
	}
	return shared.NewPage(content, page, total), nil
}

func (r *UserRepository) FindNonDeletedByID(ctx context.Context, id int64, opts ...user.LoadOption) (*user.User, error) {
	return r.findOne(ctx, id, user.NonDeletedByID(id), opts)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64, opts ...user.LoadOption) (*user.User, error) {
	return r.findOne(ctx, id, user.ByID(id), opts)
}

func (r *UserRepository) findOne(ctx context.Context, id int64, spec shared.Specification[*user.User], opts []user.LoadOption) (*user.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer r.store.enter(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok || !spec.IsSatisfiedBy(ctx, u) {
		return nil, user.NewUserNotFoundError(id)
	}
	return detach(u, user.ApplyLoadOptions(opts...)), nil
}

// filter returns stored users matching spec, ordered by id. Caller holds mu.
func (r *UserRepository) filter(ctx context.Context, spec shared.Specification[*user.User]) []*user.User {
	out := make([]*user.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		if spec.IsSatisfiedBy(ctx, u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer r.store.enter(ctx)()
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if u.IsNew() {
		return r.insert(u)
	}
	return r.update(u)
}

func (r *UserRepository) insert(u *user.User) error {
	if r.identityTaken(0, u.Username(), u.Email()) {
		return user.NewDuplicateIdentityError()
	}
	r.store.nextUserID++
	u.AssignID(r.store.nextUserID)

	for _, o := range u.Orders() {
		r.assignOrderID(o)
		o.ClearDirty()
	}
	u.IncrementVersionForSave()
	r.store.users[u.ID()] = u.Clone()
	return nil
}

func (r *UserRepository) update(u *user.User) error {
	stored, ok := r.store.users[u.ID()]
	if !ok {
		return user.NewUserNotFoundError(u.ID())
	}
	if stored.Version() != u.Version() {
		return user.NewConcurrentModificationError(u.ID())
	}
	if r.identityTaken(u.ID(), u.Username(), u.Email()) {
		return user.NewDuplicateIdentityError()
	}

	// merge the incoming orders into the stored collection, which may be
	// larger when the caller did not load orders
	merged := stored.Orders()
	index := make(map[int64]int, len(merged))
	for i, o := range merged {
		index[o.ID()] = i
	}
	for _, o := range u.Orders() {
		switch {
		case o.IsNew():
			r.assignOrderID(o)
			merged = append(merged, o.Clone())
		case o.IsDirty():
			if i, ok := index[o.ID()]; ok {
				merged[i] = o.Clone()
			}
		}
		o.ClearDirty()
	}

	u.IncrementVersionForSave()
	next := user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Deleted:   u.IsDeleted(),
		Version:   u.Version(),
		CreatedAt: stored.CreatedAt(),
	})
	next.LoadOrders(merged)
	r.store.users[u.ID()] = next.Clone()
	return nil
}

func (r *UserRepository) assignOrderID(o *order.Order) {
	if !o.IsNew() {
		return
	}
	r.store.nextOrderID++
	o.AssignID(r.store.nextOrderID)
}

// identityTaken reports whether another user, deleted or not, already uses
// username or email.
func (r *UserRepository) identityTaken(self int64, username, email string) bool {
	for id, other := range r.store.users {
		if id == self {
			continue
		}
		if other.Username() == username || other.Email() == email {
			return true
		}
	}
	return false
}

// detach copies a stored user for the caller, optionally without orders.
func detach(u *user.User, opts user.LoadOptions) *user.User {
	if opts.Orders {
		return u.Clone()
	}
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Deleted:   u.IsDeleted(),
		Version:   u.Version(),
		CreatedAt: u.CreatedAt(),
	})
}

var _ user.Repository = (*UserRepository)(nil)
