package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	models "github.com/aaravmahajanofficial/storefront/internal/models"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userService struct {
	repo     repository.UserRepository
	limiter  repository.RateLimiter
	rate     config.RateConfig
	jwtKey   []byte
	tokenTTL time.Duration
	policy   *bluemonday.Policy
}

func NewUserService(repo repository.UserRepository, limiter repository.RateLimiter, rate config.RateConfig, security config.Security) UserService {
	return &userService{
		repo:     repo,
		limiter:  limiter,
		rate:     rate,
		jwtKey:   []byte(security.JWTKey),
		tokenTTL: security.TokenTTL,
		policy:   bluemonday.StrictPolicy(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {

	logger := middleware.LoggerFromContext(ctx)

	name := strings.TrimSpace(s.policy.Sanitize(req.Name))
	if name == "" {
		return nil, errors.ValidationError("Name is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    normalizeEmail(req.Email),
		Password: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if stdErrors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.DuplicateEntryError("Email already registered")
		}

		logger.Error("Failed to create user", slog.String("error", err.Error()))
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", slog.String("userId", user.ID.String()))

	return &models.AuthResponse{User: user.Summary(), Token: token}, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	logger := middleware.LoggerFromContext(ctx)
	email := normalizeEmail(req.Email)

	allowed, retryAfter, err := s.limiter.Allow(ctx, "login_attempts:"+email, s.rate.MaxAttempts, s.rate.WindowSize)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		logger.Warn("Login rate limit exceeded", slog.String("email", email))
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("Retry after %d seconds", int(retryAfter.Round(time.Second).Seconds())))
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.UnauthorizedError("Invalid email or password")
		}

		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: user.Summary(), Token: token}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NotFoundError("User not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch user").WithError(err)
	}

	return user, nil
}

func (s *userService) issueToken(user *models.User) (string, error) {

	now := time.Now()

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return "", errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return tokenString, nil
}
