package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"smartPricer/domain"
	"smartPricer/pkg/logger"
	"smartPricer/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *userService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil {
		return domain.User{}, errors.New("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if user.Role == "" {
		user.Role = "viewer"
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error("failed to create user", "error", err)
		return domain.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	created := *user
	created.Password = ""

	return created, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	if err := ctx.Err(); err != nil {
		return "", domain.User{}, fmt.Errorf("context error: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", domain.User{}, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(strconv.FormatUint(uint64(user.ID), 10), user.Role, tokenTTL)
	if err != nil {
		logger.Error("failed to issue token", "user_id", user.ID, "error", err)
		return "", domain.User{}, fmt.Errorf("failed to issue token: %w", err)
	}

	user.Password = ""

	return token, user, nil
}
