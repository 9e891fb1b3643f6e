package user

import (
	"strings"
	"time"

	"jsonview/domain/order"
)

// User 用户聚合根
//
// The aggregate owns its Orders. Orders are loaded explicitly by the
// repository (WithOrders); a cascade delete refuses to run on a user whose
// orders are not loaded so it can never be partial.
type User struct {
	id           int64
	username     string
	email        string
	orders       []*order.Order
	ordersLoaded bool
	deleted      bool
	version      int // 乐观锁版本号
	createdAt    time.Time
}

// New 创建新用户实体
func New(username, email string) (*User, error) {
	if err := checkContact(username, email); err != nil {
		return nil, err
	}
	return &User{
		username:     username,
		email:        email,
		orders:       []*order.Order{},
		ordersLoaded: true,
		createdAt:    time.Now().UTC(),
	}, nil
}

func checkContact(username, email string) error {
	if strings.TrimSpace(username) == "" {
		return NewInvalidContactError("username")
	}
	if strings.TrimSpace(email) == "" {
		return NewInvalidContactError("email")
	}
	return nil
}

// ChangeContact overwrites username and email. Orders and deletion state are untouched.
func (u *User) ChangeContact(username, email string) error {
	if u.deleted {
		return NewUserDeletedError(u.id)
	}
	if err := checkContact(username, email); err != nil {
		return err
	}
	u.username = username
	u.email = email
	return nil
}

// AddOrder attaches o to this user and appends it to the order collection.
func (u *User) AddOrder(o *order.Order) error {
	if u.deleted {
		return NewUserDeletedError(u.id)
	}
	// unsaved users attach their orders in AssignID
	if !u.IsNew() {
		if err := o.AttachTo(u.id); err != nil {
			return err
		}
	}
	u.orders = append(u.orders, o)
	return nil
}

// Delete soft-deletes the user and moves every owned order to DELETED.
// Deleting an already deleted user is a no-op.
func (u *User) Delete() error {
	if u.deleted {
		return nil
	}
	if !u.ordersLoaded {
		return NewOrdersNotLoadedError(u.id)
	}
	for _, o := range u.orders {
		if err := o.MarkDeleted(); err != nil {
			return err
		}
	}
	u.deleted = true
	return nil
}

// ============================================================================
// Getters
// ============================================================================

func (u *User) ID() int64            { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) IsDeleted() bool      { return u.deleted }
func (u *User) Version() int         { return u.version }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) OrdersLoaded() bool   { return u.ordersLoaded }
func (u *User) IsNew() bool          { return u.id == 0 }

// Orders returns the loaded orders. The slice is a copy; the orders are not.
func (u *User) Orders() []*order.Order {
	out := make([]*order.Order, len(u.orders))
	copy(out, u.orders)
	return out
}

// ============================================================================
// 仓储层专用
// ============================================================================

// AssignID records the storage identity of a freshly inserted user and
// attaches any orders added before the user had one.
func (u *User) AssignID(id int64) {
	if u.id != 0 {
		return
	}
	u.id = id
	for _, o := range u.orders {
		if o.UserID() == 0 {
			// id is positive and the order is unowned, so this cannot fail
			_ = o.AttachTo(id)
		}
	}
}

// IncrementVersionForSave bumps the version after a successful save.
func (u *User) IncrementVersionForSave() {
	u.version++
}

// LoadOrders installs the persisted order collection.
func (u *User) LoadOrders(orders []*order.Order) {
	u.orders = append([]*order.Order{}, orders...)
	u.ordersLoaded = true
}

// Clone returns a deep copy, used by stores that keep aggregates in memory.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.orders = make([]*order.Order, 0, len(u.orders))
	for _, o := range u.orders {
		c.orders = append(c.orders, o.Clone())
	}
	return &c
}

// ReconstructionDTO 用户重建数据传输对象
// ⚠️ 注意：此DTO仅应在仓储实现中使用，不应在应用层调用
type ReconstructionDTO struct {
	ID        int64
	Username  string
	Email     string
	Deleted   bool
	Version   int
	CreatedAt time.Time
}

// RebuildFromDTO 从DTO重建User聚合根，订单需另行 LoadOrders
func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		id:        dto.ID,
		username:  dto.Username,
		email:     dto.Email,
		deleted:   dto.Deleted,
		version:   dto.Version,
		createdAt: dto.CreatedAt,
	}
}
