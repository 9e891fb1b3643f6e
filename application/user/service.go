package user

import (
	"context"
	"errors"

	"jsonview/domain/shared"
	"jsonview/domain/user"
	"jsonview/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService User application service - coordinates user-related business processes
//
// Every operation validates its arguments first. Read-then-write sequences
// run inside one unit of work.
type ApplicationService struct {
	userRepo  user.Repository
	uow       shared.UnitOfWork
	validator *Validator
}

// NewApplicationService Create user application service
func NewApplicationService(userRepo user.Repository, uow shared.UnitOfWork) *ApplicationService {
	return &ApplicationService{
		userRepo:  userRepo,
		uow:       uow,
		validator: NewValidator(),
	}
}

// ListUsers returns one page of non-deleted users in their public view.
func (s *ApplicationService) ListUsers(ctx context.Context, req *shared.PageRequest) (*shared.Page[UserView], error) {
	if err := s.validator.ValidatePageRequest(req); err != nil {
		return nil, err
	}

	page, err := s.userRepo.FindPageOfNonDeleted(ctx, *req)
	if err != nil {
		return nil, err
	}
	return shared.MapPage(page, publicView), nil
}

// GetUser returns the detailed view of a non-deleted user.
func (s *ApplicationService) GetUser(ctx context.Context, id int64) (*UserDetailView, error) {
	if err := s.validator.ValidateID(id); err != nil {
		return nil, err
	}

	u, err := s.userRepo.FindNonDeletedByID(ctx, id, user.WithOrders())
	if err != nil {
		return nil, err
	}
	return ToDetailedView(u), nil
}

// CreateUser persists a new user. Duplicate username or email is a conflict.
func (s *ApplicationService) CreateUser(ctx context.Context, req *UserRequest) (*UserView, error) {
	if err := s.validator.ValidateUserRequest(req); err != nil {
		return nil, err
	}

	u, err := user.New(req.Username, req.Email)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		return s.userRepo.Save(ctx, u)
	})
	if err != nil {
		s.logFailure(ctx, "create user failed", err)
		return nil, err
	}

	logger.FromContext(ctx).Info("User created", zap.Int64("user_id", u.ID()))
	return ToPublicView(u), nil
}

// UpdateUser overwrites username and email of a non-deleted user.
func (s *ApplicationService) UpdateUser(ctx context.Context, id int64, req *UserRequest) (*UserView, error) {
	if err := s.validator.ValidateUpdate(id, req); err != nil {
		return nil, err
	}

	var u *user.User
	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		u, err = s.userRepo.FindNonDeletedByID(ctx, id)
		if err != nil {
			return err
		}
		if err := u.ChangeContact(req.Username, req.Email); err != nil {
			return err
		}
		return s.userRepo.Save(ctx, u)
	})
	if err != nil {
		s.logFailure(ctx, "update user failed", err)
		return nil, err
	}
	return ToPublicView(u), nil
}

// AddOrder creates a CREATED order owned by the referenced non-deleted user.
func (s *ApplicationService) AddOrder(ctx context.Context, req *OrderRequest) error {
	if err := s.validator.ValidateOrderRequest(req); err != nil {
		return err
	}
	userID := *req.UserID

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.FindNonDeletedByID(ctx, userID)
		if err != nil {
			return err
		}
		o, err := OrderFromRequest(req)
		if err != nil {
			return err
		}
		if err := u.AddOrder(o); err != nil {
			return err
		}
		return s.userRepo.Save(ctx, u)
	})
	if err != nil {
		s.logFailure(ctx, "add order failed", err)
		return err
	}
	return nil
}

// DeleteUser soft-deletes a user and all of its orders in one unit of work.
// A missing or already deleted user is a no-op.
func (s *ApplicationService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.validator.ValidateID(id); err != nil {
		return err
	}

	err := s.uow.Execute(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.FindNonDeletedByID(ctx, id, user.WithOrders())
		if errors.Is(err, shared.ErrNotFound) {
			logger.FromContext(ctx).Debug("Delete of absent user ignored", zap.Int64("user_id", id))
			return nil
		}
		if err != nil {
			return err
		}
		if err := u.Delete(); err != nil {
			return err
		}
		if err := s.userRepo.Save(ctx, u); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("User deleted",
			zap.Int64("user_id", id),
			zap.Int("orders", len(u.Orders())),
		)
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "delete user failed", err)
		return err
	}
	return nil
}

// logFailure records conflicts at warn level; other errors are logged by the API layer.
func (s *ApplicationService) logFailure(ctx context.Context, msg string, err error) {
	if errors.Is(err, shared.ErrConflict) {
		logger.FromContext(ctx).Warn(msg, zap.Error(err))
	}
}
