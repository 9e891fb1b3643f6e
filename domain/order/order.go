/*
Package order Order subdomain.

An Order is a sub-entity inside the User aggregate: it is created through
a User, persisted together with it and only ever changes status as part of
the owner's soft delete.
*/
package order

import (
	"strings"
	"time"
)

// Status Order status enum
type Status string

const (
	StatusCreated Status = "CREATED"
	StatusDeleted Status = "DELETED"
)

// transitions lists the allowed target states of each status.
var transitions = map[Status][]Status{
	StatusCreated: {StatusDeleted},
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

func (s Status) IsValid() bool {
	return s == StatusCreated || s == StatusDeleted
}

// Order Order entity
type Order struct {
	id        int64
	userID    int64
	bucket    string
	status    Status
	createdAt time.Time

	// dirty is set when status changed since load; the repository clears it after save
	dirty bool
}

// New creates an unowned order in CREATED status. The owner is attached by
// the User aggregate, the id by storage.
func New(bucket string) (*Order, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, NewInvalidBucketError()
	}
	return &Order{
		bucket:    bucket,
		status:    StatusCreated,
		createdAt: time.Now().UTC(),
	}, nil
}

// AttachTo sets the owning user. An owner, once set, never changes.
func (o *Order) AttachTo(userID int64) error {
	if userID <= 0 {
		return NewOwnerChangeError(o.userID, userID)
	}
	if o.userID != 0 && o.userID != userID {
		return NewOwnerChangeError(o.userID, userID)
	}
	o.userID = userID
	return nil
}

// MarkDeleted moves the order to DELETED. Already deleted orders are left untouched.
func (o *Order) MarkDeleted() error {
	if o.status == StatusDeleted {
		return nil
	}
	if !o.status.CanTransitionTo(StatusDeleted) {
		return NewInvalidStateTransitionError(o.status, StatusDeleted)
	}
	o.status = StatusDeleted
	o.dirty = true
	return nil
}

func (o *Order) ID() int64            { return o.id }
func (o *Order) UserID() int64        { return o.userID }
func (o *Order) Bucket() string       { return o.bucket }
func (o *Order) Status() Status       { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// IsNew reports whether the order has not been stored yet.
func (o *Order) IsNew() bool   { return o.id == 0 }
func (o *Order) IsDirty() bool { return o.dirty }

// AssignID records the storage identity of a freshly inserted order.
// ⚠️ 仅限仓储实现使用
func (o *Order) AssignID(id int64) {
	if o.id == 0 {
		o.id = id
	}
}

// ClearDirty is called by repositories once the status change is persisted.
func (o *Order) ClearDirty() { o.dirty = false }

// Clone returns an independent copy, used by stores that keep entities in memory.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

// ReconstructionDTO 订单重建数据传输对象
// ⚠️ 注意：此DTO仅应在仓储实现中使用
type ReconstructionDTO struct {
	ID        int64
	UserID    int64
	Bucket    string
	Status    Status
	CreatedAt time.Time
}

// RebuildFromDTO 从DTO重建Order（仓储层专用）
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:        dto.ID,
		userID:    dto.UserID,
		bucket:    dto.Bucket,
		status:    dto.Status,
		createdAt: dto.CreatedAt,
	}
}
