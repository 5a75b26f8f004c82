package users

import (
	"context"
	"fmt"

	"github.com/dvelez-dev/travelbook/config"
	"github.com/dvelez-dev/travelbook/internal/auth"
	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Phone    string `json:"phone_number"`
	Address  string `json:"address"`
}

type UserService struct {
	users   repository.UserRepository
	authCfg config.AuthConfig
}

func NewUserService(users repository.UserRepository, authCfg config.AuthConfig) *UserService {
	return &UserService{users: users, authCfg: authCfg}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := domain.Role(input.Role)
	if role == "" {
		role = domain.RoleClient
	}
	if !domain.ValidRole(role) {
		return nil, &domain.ValidationError{Field: "role", Reason: "invalid role: " + input.Role}
	}
	if len(input.Password) < 8 {
		return nil, &domain.ValidationError{Field: "password", Reason: "password must be at least 8 characters long"}
	}
	if len(input.Password) > 50 {
		return nil, &domain.ValidationError{Field: "password", Reason: "password must not exceed 50 characters"}
	}
	if input.Username == "" || input.Email == "" {
		return nil, &domain.ValidationError{Field: "username", Reason: "username and email are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         role,
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Email, string(user.Role), s.authCfg)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, user, nil
}

var _ UserUseCase = (*UserService)(nil)
