package user

import (
	stdErrors "errors"
	"io"
	"net/http"
	"strconv"

	"jsonview/api/ctxutil"
	"jsonview/api/response"
	userapp "jsonview/application/user"
	"jsonview/domain/shared"
	"jsonview/pkg/errors"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

// Controller User controller
type Controller struct {
	userService *userapp.ApplicationService
}

// NewController Create user controller
func NewController(userService *userapp.ApplicationService) *Controller {
	return &Controller{
		userService: userService,
	}
}

// RegisterRoutes Register user routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.GET("", c.ListUsers)
		userGroup.GET("/:id", c.GetUser)
		userGroup.POST("/new", c.CreateUser)
		userGroup.PUT("/update/:id", c.UpdateUser)
		userGroup.POST("/order", c.AddOrder)
		userGroup.DELETE("/delete/:id", c.DeleteUser)
	}
}

// ListUsers GET /users?page=0&size=10
func (c *Controller) ListUsers(ctx *gin.Context) {
	page, err := queryInt(ctx, "page", 0)
	if err != nil {
		response.HandleAppError(ctx, errors.Validation("pageRequest.page", "Page number must be an integer"))
		return
	}
	size, err := queryInt(ctx, "size", defaultPageSize)
	if err != nil {
		response.HandleAppError(ctx, errors.Validation("pageRequest.size", "Page size must be an integer"))
		return
	}

	users, err := c.userService.ListUsers(ctxutil.WithRequestID(ctx), &shared.PageRequest{Page: page, Size: size})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleOK(ctx, users)
}

// GetUser GET /users/:id
func (c *Controller) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	user, err := c.userService.GetUser(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleOK(ctx, user)
}

// CreateUser POST /users/new
func (c *Controller) CreateUser(ctx *gin.Context) {
	req, ok := bindBody[userapp.UserRequest](ctx)
	if !ok {
		return
	}

	user, err := c.userService.CreateUser(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, user)
}

// UpdateUser PUT /users/update/:id
func (c *Controller) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	req, ok := bindBody[userapp.UserRequest](ctx)
	if !ok {
		return
	}

	user, err := c.userService.UpdateUser(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleOK(ctx, user)
}

// AddOrder POST /users/order
func (c *Controller) AddOrder(ctx *gin.Context) {
	req, ok := bindBody[userapp.OrderRequest](ctx)
	if !ok {
		return
	}

	if err := c.userService.AddOrder(ctxutil.WithRequestID(ctx), req); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleEmptyOK(ctx)
}

// DeleteUser DELETE /users/delete/:id
func (c *Controller) DeleteUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.userService.DeleteUser(ctxutil.WithRequestID(ctx), id); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		response.HandleAppError(ctx, errors.Validation("userId", "User id must be a number"))
		return 0, false
	}
	return id, true
}

func queryInt(ctx *gin.Context, key string, def int) (int, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// bindBody decodes the JSON body. An empty body yields nil so the service
// reports the missing payload as a validation finding.
func bindBody[T any](ctx *gin.Context) (*T, bool) {
	var req T
	if err := ctx.ShouldBindJSON(&req); err != nil {
		if stdErrors.Is(err, io.EOF) {
			return nil, true
		}
		response.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}
