package user

import (
	"encoding/json"
	"testing"
	"time"

	"jsonview/domain/order"
	"jsonview/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWithOrders(t *testing.T, buckets ...string) *user.User {
	t.Helper()
	u := user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        1,
		Username:  "John",
		Email:     "john@example.com",
		Version:   1,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	u.LoadOrders(nil)
	for _, b := range buckets {
		o, err := order.New(b)
		require.NoError(t, err)
		require.NoError(t, u.AddOrder(o))
	}
	return u
}

func decode(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestPublicViewHasNoOrdersKey(t *testing.T) {
	body := decode(t, ToPublicView(userWithOrders(t, "B1", "B2")))

	assert.NotContains(t, body, "orders")
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "John", body["username"])
	assert.Equal(t, "john@example.com", body["email"])
	assert.Equal(t, "2024-01-02T03:04:05Z", body["createdAt"])
}

func TestDetailedViewOrders(t *testing.T) {
	view := ToDetailedView(userWithOrders(t, "B1", "B2"))
	require.Len(t, view.Orders, 2)
	assert.Equal(t, OrderView{UserID: 1, OrderBucket: "B1"}, view.Orders[0])
	assert.Equal(t, "B2", view.Orders[1].OrderBucket)

	body := decode(t, view)
	assert.Equal(t, "John", body["username"])
	assert.Len(t, body["orders"], 2)
}

func TestDetailedViewEmptyOrdersIsArray(t *testing.T) {
	raw, err := json.Marshal(ToDetailedView(userWithOrders(t)))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"orders":[]`)
}

func TestDetailedViewIncludesDeletedOrders(t *testing.T) {
	u := userWithOrders(t, "B1")
	require.NoError(t, u.Delete())

	view := ToDetailedView(u)
	assert.Len(t, view.Orders, 1)
}

func TestMappersAreNilSafe(t *testing.T) {
	assert.Nil(t, ToPublicView(nil))
	assert.Nil(t, ToDetailedView(nil))
	assert.Nil(t, OrderToView(nil))

	o, err := OrderFromRequest(nil)
	assert.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderFromRequestIgnoresOwner(t *testing.T) {
	o, err := OrderFromRequest(&OrderRequest{UserID: int64Ptr(42), OrderBucket: "B1"})
	require.NoError(t, err)

	assert.Zero(t, o.UserID())
	assert.Zero(t, o.ID())
	assert.Equal(t, order.StatusCreated, o.Status())
}
