package user

import "time"

// UserRequest is the client payload for create and update. Any id, orders or
// timestamp sent by the client are not part of it and are ignored.
type UserRequest struct {
	Username string `json:"username" validate:"notblank"`
	Email    string `json:"email" validate:"notblank,email"`
}

// OrderRequest attaches a new order to an existing user.
type OrderRequest struct {
	UserID      *int64 `json:"userId" validate:"required,gt=0"`
	OrderBucket string `json:"orderBucket" validate:"notblank"`
}

// UserView is the public representation of a user. It has no orders field.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDetailView adds the full order list. Orders is always a JSON array.
type UserDetailView struct {
	UserView
	Orders []OrderView `json:"orders"`
}

type OrderView struct {
	UserID      int64  `json:"userId"`
	OrderBucket string `json:"orderBucket"`
}
