package user

import (
	"jsonview/domain/order"
	"jsonview/domain/user"
)

// ToPublicView maps a user without its orders.
func ToPublicView(u *user.User) *UserView {
	if u == nil {
		return nil
	}
	v := publicView(u)
	return &v
}

func publicView(u *user.User) UserView {
	return UserView{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
	}
}

// ToDetailedView maps a user with every loaded order, whatever its status.
func ToDetailedView(u *user.User) *UserDetailView {
	if u == nil {
		return nil
	}
	orders := u.Orders()
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, *OrderToView(o))
	}
	return &UserDetailView{UserView: publicView(u), Orders: views}
}

func OrderToView(o *order.Order) *OrderView {
	if o == nil {
		return nil
	}
	return &OrderView{UserID: o.UserID(), OrderBucket: o.Bucket()}
}

// OrderFromRequest builds a new unowned order. The owner is attached by the
// user aggregate and the id by storage, never from client input.
func OrderFromRequest(req *OrderRequest) (*order.Order, error) {
	if req == nil {
		return nil, nil
	}
	return order.New(req.OrderBucket)
}
