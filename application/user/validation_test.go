package user

import (
	"math"
	"testing"

	"jsonview/domain/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingsOf(t *testing.T, err error) []shared.Finding {
	t.Helper()
	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Findings
}

func int64Ptr(v int64) *int64 { return &v }

func TestValidateUserRequest(t *testing.T) {
	v := NewValidator()

	testCases := []struct {
		name string
		req  *UserRequest
		want []shared.Finding
	}{
		{"valid", &UserRequest{Username: "John", Email: "john@example.com"}, nil},
		{"nil dto", nil, []shared.Finding{{Field: "userDto", Message: "User dto mustn't be null"}}},
		{
			"both blank",
			&UserRequest{Username: " ", Email: ""},
			[]shared.Finding{
				{Field: "userDto.username", Message: "User dto: username is null or empty"},
				{Field: "userDto.email", Message: "Email is null or empty"},
			},
		},
		{
			"bad email",
			&UserRequest{Username: "John", Email: "not-an-email"},
			[]shared.Finding{{Field: "userDto.email", Message: "Invalid email format"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateUserRequest(tc.req)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Equal(t, tc.want, findingsOf(t, err))
		})
	}
}

func TestValidateIDAndUpdate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateID(1))
	for _, id := range []int64{0, -3} {
		assert.Equal(t,
			[]shared.Finding{{Field: "userId", Message: "User id must be positive"}},
			findingsOf(t, v.ValidateID(id)))
	}

	err := v.ValidateUpdate(0, &UserRequest{Username: "", Email: "x@y.z"})
	assert.Len(t, findingsOf(t, err), 2)

	err = v.ValidateUpdate(-1, nil)
	assert.Equal(t, []shared.Finding{
		{Field: "userId", Message: "User id must be positive"},
		{Field: "userDto", Message: "User dto mustn't be null"},
	}, findingsOf(t, err))
}

func TestValidateOrderRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateOrderRequest(&OrderRequest{UserID: int64Ptr(1), OrderBucket: "B1"}))

	assert.Equal(t,
		[]shared.Finding{{Field: "orderDto", Message: "Order dto mustn't be null"}},
		findingsOf(t, v.ValidateOrderRequest(nil)))

	assert.Equal(t, []shared.Finding{
		{Field: "orderDto.userId", Message: "Order dto: user id mustn't be null"},
		{Field: "orderDto.orderBucket", Message: "Order dto: order bucket is null or empty"},
	}, findingsOf(t, v.ValidateOrderRequest(&OrderRequest{})))

	assert.Equal(t,
		[]shared.Finding{{Field: "orderDto.userId", Message: "Order dto: user id must be positive"}},
		findingsOf(t, v.ValidateOrderRequest(&OrderRequest{UserID: int64Ptr(0), OrderBucket: "B1"})))
}

func TestValidatePageRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidatePageRequest(&shared.PageRequest{Page: 0, Size: 1}))
	assert.NoError(t, v.ValidatePageRequest(&shared.PageRequest{Page: 3, Size: 100}))

	assert.Equal(t,
		[]shared.Finding{{Field: "pageRequest", Message: "Pageable arg mustn't be null"}},
		findingsOf(t, v.ValidatePageRequest(nil)))

	assert.Equal(t, []shared.Finding{
		{Field: "pageRequest.page", Message: "Page number must not be negative"},
		{Field: "pageRequest.size", Message: "Page size must be between 1 and 100"},
	}, findingsOf(t, v.ValidatePageRequest(&shared.PageRequest{Page: -1, Size: 0})))

	assert.Len(t, findingsOf(t, v.ValidatePageRequest(&shared.PageRequest{Size: 101})), 1)

	assert.Equal(t,
		[]shared.Finding{{Field: "pageRequest.page", Message: "Page number is too large"}},
		findingsOf(t, v.ValidatePageRequest(&shared.PageRequest{Page: math.MaxInt / 50, Size: 100})))
	assert.NoError(t, v.ValidatePageRequest(&shared.PageRequest{Page: math.MaxInt / 100, Size: 100}))
}
