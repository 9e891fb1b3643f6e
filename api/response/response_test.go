package response

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jsonview/domain/shared"
	"jsonview/domain/user"
	"jsonview/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/1", nil)
	c.Set(RequestIDKey, "req-1")
	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleAppErrorStatusMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		status   int
		code     string
		findings int
	}{
		{"validation", shared.NewValidationError([]shared.Finding{{Field: "a", Message: "b"}, {Field: "c", Message: "d"}}), http.StatusBadRequest, "VALIDATION_ERROR", 2},
		{"not found", user.NewUserNotFoundError(1), http.StatusNotFound, "USER_NOT_FOUND", 0},
		{"conflict", user.NewDuplicateIdentityError(), http.StatusConflict, "CONFLICT", 0},
		{"stale", user.NewConcurrentModificationError(1), http.StatusConflict, "CONCURRENT_MODIFICATION", 0},
		{"internal", stdErrors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(t, func(c *gin.Context) { HandleAppError(c, tc.err) })

			assert.Equal(t, tc.status, w.Code)
			body := decodeBody(t, w)
			assert.False(t, body.Success)
			assert.Equal(t, tc.code, body.Error)
			assert.Equal(t, tc.status, body.Code)
			assert.Equal(t, "req-1", body.RequestID)
			assert.Len(t, body.Findings, tc.findings)
		})
	}
}

func TestHandleAppErrorHidesInternals(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer logger.ReplaceForTest(zap.New(core))()

	w := serve(t, func(c *gin.Context) { HandleAppError(c, stdErrors.New("password=hunter2")) })

	body := decodeBody(t, w)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "hunter2")

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "stack")
}

func TestHandleAppErrorNotFoundMessage(t *testing.T) {
	w := serve(t, func(c *gin.Context) { HandleAppError(c, user.NewUserNotFoundError(9)) })
	assert.Equal(t, "User not found for id: 9", decodeBody(t, w).Message)
}

func TestHandleError(t *testing.T) {
	w := serve(t, func(c *gin.Context) {
		HandleError(c, stdErrors.New("unexpected EOF"), "invalid request body", http.StatusBadRequest)
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "BAD_REQUEST", body.Error)
	assert.Equal(t, "invalid request body", body.Message)
}

func TestSuccessHandlers(t *testing.T) {
	w := serve(t, func(c *gin.Context) { HandleCreated(c, map[string]int{"id": 1}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())

	w = serve(t, func(c *gin.Context) { HandleOK(c, []int{}) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(t, HandleEmptyOK)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
