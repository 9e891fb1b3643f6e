package gormdb

import (
	"context"
	"errors"
	"fmt"

	"jsonview/domain/order"
	"jsonview/domain/shared"
	"jsonview/domain/user"
	"jsonview/infrastructure/persistence"
	"jsonview/infrastructure/persistence/gormdb/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

var byIDAsc = clause.OrderByColumn{Column: clause.Column{Name: "id"}}

func (r *UserRepository) FindPageOfNonDeleted(ctx context.Context, page shared.PageRequest) (*shared.Page[*user.User], error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	base := r.applySpecification(r.getDB(ctx).Model(&po.UserPO{}), user.NotDeleted()).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	var rows []po.UserPO
	if err := base.Order(byIDAsc).Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].ToDomain())
	}
	return shared.NewPage(users, page, total), nil
}

func (r *UserRepository) FindNonDeletedByID(ctx context.Context, id int64, opts ...user.LoadOption) (*user.User, error) {
	return r.findOne(ctx, id, user.NonDeletedByID(id), user.ApplyLoadOptions(opts...))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64, opts ...user.LoadOption) (*user.User, error) {
	return r.findOne(ctx, id, user.ByID(id), user.ApplyLoadOptions(opts...))
}

func (r *UserRepository) findOne(ctx context.Context, id int64, spec shared.Specification[*user.User], opts user.LoadOptions) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	db := r.applySpecification(r.getDB(ctx), spec)
	var row po.UserPO
	if err := db.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, err
	}

	u := row.ToDomain()
	if opts.Orders {
		var orderRows []po.OrderPO
		if err := r.getDB(ctx).Where("user_id = ?", id).Order(byIDAsc).Find(&orderRows).Error; err != nil {
			return nil, fmt.Errorf("load orders of user %d: %w", id, err)
		}
		u.LoadOrders(po.ToDomainList(orderRows))
	}
	return u, nil
}

// applySpecification translates user specifications into WHERE clauses.
// Unsupported specifications fail the query instead of being ignored.
func (r *UserRepository) applySpecification(db *gorm.DB, spec shared.Specification[*user.User]) *gorm.DB {
	switch s := spec.(type) {
	case nil:
		return db
	case shared.AndSpecification[*user.User]:
		return r.applySpecification(r.applySpecification(db, s.Left), s.Right)
	case shared.NotSpecification[*user.User]:
		return r.applyNotSpecification(db, s.Spec)
	case user.NotDeletedSpecification:
		return db.Where("deleted = ?", false)
	case user.ByIDSpecification:
		return db.Where("id = ?", s.ID)
	default:
		_ = db.AddError(fmt.Errorf("unsupported user specification %T", spec))
		return db
	}
}

func (r *UserRepository) applyNotSpecification(db *gorm.DB, spec shared.Specification[*user.User]) *gorm.DB {
	switch s := spec.(type) {
	case user.NotDeletedSpecification:
		return db.Where("deleted = ?", true)
	case user.ByIDSpecification:
		return db.Where("id <> ?", s.ID)
	case shared.NotSpecification[*user.User]:
		return r.applySpecification(db, s.Spec)
	default:
		_ = db.AddError(fmt.Errorf("unsupported negated user specification %T", spec))
		return db
	}
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.saveWithTx(tx, u)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithTx(tx, u)
	})
}

func (r *UserRepository) saveWithTx(tx *gorm.DB, u *user.User) error {
	if u.IsNew() {
		if err := r.insertUser(tx, u); err != nil {
			return err
		}
	} else if err := r.updateUser(tx, u); err != nil {
		return err
	}

	for _, o := range u.Orders() {
		if err := r.saveOrder(tx, o); err != nil {
			return err
		}
	}
	u.IncrementVersionForSave()
	return nil
}

func (r *UserRepository) insertUser(tx *gorm.DB, u *user.User) error {
	row := po.FromUserDomain(u)
	row.Version = u.Version() + 1
	if err := tx.Create(row).Error; err != nil {
		if isDuplicateKeyError(err) {
			return user.NewDuplicateIdentityError()
		}
		return err
	}
	u.AssignID(row.ID)
	return nil
}

func (r *UserRepository) updateUser(tx *gorm.DB, u *user.User) error {
	expectedVersion := u.Version()

	// 严格乐观锁：必须使用聚合当前版本作为更新条件，避免静默覆盖并发写入。
	result := tx.Model(&po.UserPO{}).
		Where("id = ? AND version = ?", u.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"username": u.Username(),
			"email":    u.Email(),
			"deleted":  u.IsDeleted(),
			"version":  expectedVersion + 1,
		})

	if result.Error != nil {
		switch {
		case isDuplicateKeyError(result.Error):
			return user.NewDuplicateIdentityError()
		case isLockConflict(result.Error):
			return user.NewConcurrentModificationError(u.ID())
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.UserPO{}).Where("id = ?", u.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return user.NewUserNotFoundError(u.ID())
		}
		return user.NewConcurrentModificationError(u.ID())
	}
	return nil
}

// saveOrder inserts new orders and writes the status of changed ones.
func (r *UserRepository) saveOrder(tx *gorm.DB, o *order.Order) error {
	switch {
	case o.IsNew():
		row := po.FromOrderDomain(o)
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		o.AssignID(row.ID)
	case o.IsDirty():
		err := tx.Model(&po.OrderPO{}).
			Where("id = ?", o.ID()).
			Update("status", string(o.Status())).Error
		if err != nil {
			return fmt.Errorf("update order %d: %w", o.ID(), err)
		}
	}
	o.ClearDirty()
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
