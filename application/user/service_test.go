package user

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"jsonview/domain/order"
	"jsonview/domain/shared"
	"jsonview/domain/user"
	"jsonview/infrastructure/persistence/memory"
	"jsonview/infrastructure/persistence/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryService() (*ApplicationService, *memory.UserRepository) {
	store := memory.NewStore()
	repo := memory.NewUserRepository(store)
	return NewApplicationService(repo, memory.NewUnitOfWork(store)), repo
}

func TestCreateThenGet(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	detail, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, detail.UserView)
	assert.NotNil(t, detail.Orders)
	assert.Empty(t, detail.Orders)
}

func TestScenarioCreateOrderGetDelete(t *testing.T) {
	svc, repo := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.AddOrder(ctx, &OrderRequest{UserID: int64Ptr(created.ID), OrderBucket: "B1"}))

	detail, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []OrderView{{UserID: 1, OrderBucket: "B1"}}, detail.Orders)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	_, err = svc.GetUser(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.EqualError(t, err, "User not found for id: 1")

	stored, err := repo.FindByID(ctx, created.ID, user.WithOrders())
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted())
	for _, o := range stored.Orders() {
		assert.Equal(t, order.StatusDeleted, o.Status())
	}

	require.NoError(t, svc.DeleteUser(ctx, created.ID), "second delete is a no-op")
	again, err := repo.FindByID(ctx, created.ID, user.WithOrders())
	require.NoError(t, err)
	assert.Equal(t, stored.Version(), again.Version())
}

func TestCreateUserAggregatesFindings(t *testing.T) {
	repo := mocks.NewUserRepository()
	svc := NewApplicationService(repo, mocks.NewUnitOfWork())

	_, err := svc.CreateUser(context.Background(), &UserRequest{})

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Findings, 2)
	assert.Zero(t, repo.Calls("Save"))
}

func TestCreateUserDuplicateIsConflict(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "other@example.com"})
	assert.ErrorIs(t, err, shared.ErrConflict)

	_, err = svc.CreateUser(ctx, &UserRequest{Username: "Other", Email: "john@example.com"})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestAddOrderUnknownUserWritesNothing(t *testing.T) {
	repo := mocks.NewUserRepository()
	uow := mocks.NewUnitOfWork()
	svc := NewApplicationService(repo, uow)

	err := svc.AddOrder(context.Background(), &OrderRequest{UserID: int64Ptr(99), OrderBucket: "B1"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 1, repo.Calls("FindNonDeletedByID"))
	assert.Zero(t, repo.Calls("Save"))
	assert.Equal(t, 1, uow.Executions())
}

func TestAddOrderToDeletedUserIsNotFound(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	err = svc.AddOrder(ctx, &OrderRequest{UserID: int64Ptr(created.ID), OrderBucket: "B1"})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.UpdateUser(ctx, created.ID, &UserRequest{Username: "Jane", Email: "jane@example.com"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateUserKeepsOrders(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)
	require.NoError(t, svc.AddOrder(ctx, &OrderRequest{UserID: int64Ptr(created.ID), OrderBucket: "B1"}))

	updated, err := svc.UpdateUser(ctx, created.ID, &UserRequest{Username: "Jane", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", updated.Username)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	detail, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", detail.Email)
	assert.Len(t, detail.Orders, 1)
}

func TestUpdateUserValidatesIDAndBody(t *testing.T) {
	repo := mocks.NewUserRepository()
	svc := NewApplicationService(repo, mocks.NewUnitOfWork())

	_, err := svc.UpdateUser(context.Background(), 0, &UserRequest{Email: "bad"})

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Findings, 3)
	assert.Zero(t, repo.Calls("FindNonDeletedByID"))
}

func TestDeleteUserMissingIsNoop(t *testing.T) {
	repo := mocks.NewUserRepository()
	svc := NewApplicationService(repo, mocks.NewUnitOfWork())

	require.NoError(t, svc.DeleteUser(context.Background(), 5))
	assert.Zero(t, repo.Calls("Save"))

	err := svc.DeleteUser(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestDeleteUserLoadsOrders(t *testing.T) {
	repo := mocks.NewUserRepository()
	repo.FindNonDeletedByIDFn = func(_ context.Context, id int64, opts user.LoadOptions) (*user.User, error) {
		u := user.RebuildFromDTO(user.ReconstructionDTO{ID: id, Username: "a", Email: "a@b.c", Version: 1})
		if opts.Orders {
			o := order.RebuildFromDTO(order.ReconstructionDTO{ID: 1, UserID: id, Bucket: "B1", Status: order.StatusCreated})
			u.LoadOrders([]*order.Order{o})
		}
		return u, nil
	}
	svc := NewApplicationService(repo, mocks.NewUnitOfWork())

	require.NoError(t, svc.DeleteUser(context.Background(), 3))

	saved := repo.Saved()
	require.Len(t, saved, 1)
	assert.True(t, saved[0].IsDeleted())
	assert.Equal(t, order.StatusDeleted, saved[0].Orders()[0].Status())
}

func TestStorageErrorsPropagate(t *testing.T) {
	storageDown := errors.New("connection refused")
	repo := mocks.NewUserRepository()
	repo.SaveFn = func(context.Context, *user.User) error { return storageDown }
	repo.FindPageFn = func(context.Context, shared.PageRequest) (*shared.Page[*user.User], error) {
		return nil, storageDown
	}
	svc := NewApplicationService(repo, mocks.NewUnitOfWork())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	assert.ErrorIs(t, err, storageDown)

	_, err = svc.ListUsers(ctx, &shared.PageRequest{Page: 0, Size: 10})
	assert.ErrorIs(t, err, storageDown)
}

func TestListUsersExcludesDeleted(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := svc.CreateUser(ctx, &UserRequest{Username: fmt.Sprintf("u%d", i), Email: fmt.Sprintf("u%d@example.com", i)})
		require.NoError(t, err)
	}
	require.NoError(t, svc.DeleteUser(ctx, 2))

	for size := 1; size <= 4; size++ {
		var seen []int64
		for p := 0; p < 4; p++ {
			page, err := svc.ListUsers(ctx, &shared.PageRequest{Page: p, Size: size})
			require.NoError(t, err)
			assert.Equal(t, int64(3), page.TotalElements)
			for _, v := range page.Content {
				seen = append(seen, v.ID)
			}
		}
		assert.Equal(t, []int64{1, 3, 4}, seen, "size %d", size)
	}

	_, err := svc.ListUsers(ctx, nil)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestListUsersHugePageNumber(t *testing.T) {
	svc, _ := newMemoryService()
	ctx := context.Background()
	_, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)

	_, err = svc.ListUsers(ctx, &shared.PageRequest{Page: math.MaxInt / 50, Size: 100})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	page, err := svc.ListUsers(ctx, &shared.PageRequest{Page: math.MaxInt / 100, Size: 100})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, int64(1), page.TotalElements)
}

func TestConcurrentDeletesCascadeOnce(t *testing.T) {
	svc, repo := newMemoryService()
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &UserRequest{Username: "John", Email: "john@example.com"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.AddOrder(ctx, &OrderRequest{UserID: int64Ptr(created.ID), OrderBucket: fmt.Sprintf("B%d", i)}))
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.DeleteUser(ctx, created.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	stored, err := repo.FindByID(ctx, created.ID, user.WithOrders())
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted())
	assert.Len(t, stored.Orders(), 3)
	for _, o := range stored.Orders() {
		assert.Equal(t, order.StatusDeleted, o.Status())
	}
}
