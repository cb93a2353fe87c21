package service

import (
	"context"
	"course_academy_backend/internal/model"
	"course_academy_backend/internal/repository"
	"course_academy_backend/internal/util"
)

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
}

// NewUserService 创建一个新的用户服务实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// EnsureUser creates the user on first sight and keeps name, email, role and
// last-seen in step with the identity provider.
func (s *UserService) EnsureUser(ctx context.Context, session util.Session) error {
	if session.UserID == "" {
		return util.Validationf("session has no user id")
	}
	return s.UserRepo.Upsert(ctx, &model.User{
		ID:    session.UserID,
		Name:  session.Name,
		Email: session.Email,
		Role:  session.Role,
	})
}

// GetProfile 获取用户信息
func (s *UserService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, util.NotFoundOr(err, util.ErrUserNotFound)
	}
	return user, nil
}
