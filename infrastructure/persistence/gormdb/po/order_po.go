package po

import (
	"time"

	"jsonview/domain/order"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, defining GORM associations is prohibited here
type OrderPO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"` // Only store ID, no association with User
	Bucket    string    `gorm:"size:255;not null"`
	Status    string    `gorm:"size:20;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"`
}

func (OrderPO) TableName() string {
	return "orders"
}

func FromOrderDomain(o *order.Order) *OrderPO {
	return &OrderPO{
		ID:        o.ID(),
		UserID:    o.UserID(),
		Bucket:    o.Bucket(),
		Status:    string(o.Status()),
		CreatedAt: o.CreatedAt(),
	}
}

func (po *OrderPO) ToDomain() *order.Order {
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:        po.ID,
		UserID:    po.UserID,
		Bucket:    po.Bucket,
		Status:    order.Status(po.Status),
		CreatedAt: po.CreatedAt,
	})
}

// ToDomainList converts rows in order.
func ToDomainList(rows []OrderPO) []*order.Order {
	orders := make([]*order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].ToDomain())
	}
	return orders
}
