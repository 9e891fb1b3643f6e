package po

import (
	"time"

	"jsonview/domain/user"
)

// UserPO users table row. Username and email stay unique across soft-deleted rows.
type UserPO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"size:100;uniqueIndex;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Deleted   bool      `gorm:"not null;default:false;index"`
	Version   int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"`
}

func (UserPO) TableName() string {
	return "users"
}

func FromUserDomain(u *user.User) *UserPO {
	return &UserPO{
		ID:        u.ID(),
		Username:  u.Username(),
		Email:     u.Email(),
		Deleted:   u.IsDeleted(),
		Version:   u.Version(),
		CreatedAt: u.CreatedAt(),
	}
}

func (po *UserPO) ToDomain() *user.User {
	return user.RebuildFromDTO(user.ReconstructionDTO{
		ID:        po.ID,
		Username:  po.Username,
		Email:     po.Email,
		Deleted:   po.Deleted,
		Version:   po.Version,
		CreatedAt: po.CreatedAt,
	})
}
