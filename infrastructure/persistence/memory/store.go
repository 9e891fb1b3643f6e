/*
Package memory is an in-process user store. It is the default backend for
development and the fixture for service tests.
*/
package memory

import (
	"context"
	"sync"

	"jsonview/domain/user"
)

// Store holds cloned aggregates keyed by id.
//
// txMu serializes units of work. Operations outside a unit of work also take
// it, so they never observe state a failing unit of work later rolls back.
// mu guards the maps for single operations.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users       map[int64]*user.User
	nextUserID  int64
	nextOrderID int64
}

func NewStore() *Store {
	return &Store{users: make(map[int64]*user.User)}
}

type snapshot struct {
	users       map[int64]*user.User
	nextUserID  int64
	nextOrderID int64
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make(map[int64]*user.User, len(s.users))
	for id, u := range s.users {
		users[id] = u.Clone()
	}
	return snapshot{users: users, nextUserID: s.nextUserID, nextOrderID: s.nextOrderID}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.nextUserID = snap.nextUserID
	s.nextOrderID = snap.nextOrderID
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*Store)
	return ok
}

// enter waits for any running unit of work unless ctx already belongs to one.
func (s *Store) enter(ctx context.Context) (leave func()) {
	if inTx(ctx) {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// UnitOfWork runs fn with the store locked and restores the previous state
// when fn fails.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	snap := u.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, u.store)); err != nil {
		u.store.restore(snap)
		return err
	}
	return nil
}
