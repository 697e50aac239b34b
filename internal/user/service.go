package user

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password must have at least 6 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*User, error)
	Login(ctx context.Context, dto LoginDTO) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type userService struct {
	repo     UserRepository
	validate *validator.Validate
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo, validate: validator.New()}
}

// validationError reduces validator output to the first failing rule.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ErrMissingFields
	}
	switch verrs[0].Tag() {
	case "email":
		return ErrInvalidEmail
	case "min":
		return ErrWeakPassword
	default:
		return ErrMissingFields
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	log := config.WithContext(ctx)

	dto.Name = strings.TrimSpace(dto.Name)
	dto.Email = normalizeEmail(dto.Email)
	if err := s.validate.Struct(dto); err != nil {
		return nil, validationError(err)
	}
	if len(dto.Password) > auth.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}
	if existing != nil {
		log.WithField("email", dto.Email).Warn("Registration with existing email")
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(dto.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: hash,
		Role:         RoleStudent,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if !errors.Is(err, ErrEmailTaken) {
			log.WithError(err).Error("Failed to create user")
		}
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return u, nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*User, error) {
	log := config.WithContext(ctx)

	dto.Email = normalizeEmail(dto.Email)
	if err := s.validate.Struct(dto); err != nil {
		return nil, ErrMissingFields
	}

	u, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, dto.Password) {
		log.WithField("email", dto.Email).Warn("Failed login")
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		config.WithContext(ctx).WithError(err).WithField("user_id", id).Error("Failed to load user")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
