package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/matheusqueiroz92/trekmind/internal/domain"
)

const tokenTTL = 7 * 24 * time.Hour

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	jwtSecret []byte
}

func NewServiceImpl(repo Repository, jwtSecret []byte, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account. The email must not already be taken and the
// name and email go through domain validation before anything is stored.
func (s *ServiceImpl) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to check existing user", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		span.SetStatus(codes.Error, "email taken")
		return nil, fmt.Errorf("user already exists: %w", ErrConflict)
	}

	user, err := domain.NewUser(uuid.NewString(), req.Name, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var passwordHash string
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = string(hashed)
	}

	if err := s.repo.CreateUser(ctx, user, passwordHash); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("userID", user.ID()))
	span.SetAttributes(attribute.String("user.id", user.ID()))
	return &AuthResponse{Token: token, User: toUserDTO(user)}, nil
}

// Login verifies credentials and issues a signed token. Every failure mode
// maps to the same ErrUnauthenticated so the response does not leak whether
// the account exists.
func (s *ServiceImpl) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to look up user", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		span.SetStatus(codes.Error, "unknown email")
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthenticated)
	}

	hash, err := s.repo.GetPasswordHash(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to look up credentials: %w", err)
	}
	if hash == "" {
		span.SetStatus(codes.Error, "no password on account")
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		return nil, fmt.Errorf("invalid email or password: %w", ErrUnauthenticated)
	}

	token, err := s.signToken(user)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user.id", user.ID()))
	return &AuthResponse{Token: token, User: toUserDTO(user)}, nil
}

func (s *ServiceImpl) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID(),
		Email:  user.Email(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:        user.ID(),
		Name:      user.Name(),
		Email:     user.Email(),
		CreatedAt: user.CreatedAt(),
	}
}
