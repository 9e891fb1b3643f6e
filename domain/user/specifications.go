package user

import (
	"context"

	"jsonview/domain/shared"
)

// NotDeletedSpecification matches users whose deleted flag is false.
type NotDeletedSpecification struct{}

func (NotDeletedSpecification) IsSatisfiedBy(_ context.Context, u *User) bool {
	return !u.IsDeleted()
}

// ByIDSpecification matches one user id.
type ByIDSpecification struct {
	ID int64
}

func (spec ByIDSpecification) IsSatisfiedBy(_ context.Context, u *User) bool {
	return u.ID() == spec.ID
}

func NotDeleted() shared.Specification[*User] {
	return NotDeletedSpecification{}
}

func ByID(id int64) shared.Specification[*User] {
	return ByIDSpecification{ID: id}
}

// NonDeletedByID combines ByID and NotDeleted.
func NonDeletedByID(id int64) shared.Specification[*User] {
	return shared.And(ByID(id), NotDeleted())
}
