package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/lib/logger/sl"
	"prime_estate/internal/repository"
	"prime_estate/internal/storage"
	"prime_estate/internal/transport/http/dto"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

type UserService struct {
	log  *slog.Logger
	repo repository.UserRepository
}

func NewUserService(log *slog.Logger, repo repository.UserRepository) *UserService {
	return &UserService{
		log:  log,
		repo: repo,
	}
}

// RegisterNewUser hashes the password and stores the user. New accounts get
// the admin role, matching the single-tenant admin panel this backs.
func (s *UserService) RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (models.User, error) {
	const op = "user_service.RegisterNewUser"

	log := s.log.With(slog.String("op", op), slog.String("email", input.Email))

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: passHash,
		Role:     models.RoleAdmin,
	}

	id, err := s.repo.SaveUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")

			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		log.Error("failed to save user", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user.ID = id
	user.Password = nil

	log.Info("user registered", slog.String("user_id", id.String()))

	return user, nil
}

// Login verifies the credentials. A missing user and a wrong password both
// come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, error) {
	const op = "user_service.Login"

	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")

			return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		log.Error("failed to get user", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	log.Info("user logged in")

	return user, nil
}
