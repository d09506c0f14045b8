package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	repository "github.com/eventbooker/ticketing/internal/database/postgres"
	"github.com/eventbooker/ticketing/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type tokenClaims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   entity.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	audit    AuditLogger

	secret     []byte
	expiration time.Duration
}

func NewAuthService(userRepo repository.UserRepository, audit AuditLogger, secret string, expiration time.Duration) *authService {
	return &authService{
		userRepo:   userRepo,
		audit:      audit,
		secret:     []byte(secret),
		expiration: expiration,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest, ip string) (*entity.User, string, error) {
	role := entity.RoleClient
	switch entity.UserRole(req.Role) {
	case entity.RoleOrganizer:
		role = entity.RoleOrganizer
	case "", entity.RoleClient:
	default:
		// ADMIN is never self-assignable
		return nil, "", entity.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}

	s.audit.Log(ctx, "USER_REGISTERED", user.ID, ip, "email="+user.Email)
	user.Sanitize()
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest, ip string) (*entity.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			s.audit.Log(ctx, "LOGIN_FAILED", "", ip, "email="+req.Email)
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.audit.Log(ctx, "LOGIN_FAILED", user.ID, ip, "email="+req.Email)
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}

	s.audit.Log(ctx, "LOGIN_SUCCESS", user.ID, ip, "email="+user.Email)
	user.Sanitize()
	return user, token, nil
}

// ParseToken validates a bearer token and reconstructs the principal from
// its claims. The principal is claim-backed only; handlers that need fresh
// user state must load it from storage.
func (s *authService) ParseToken(token string) (*entity.User, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, entity.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, entity.ErrUnauthorized
	}
	return &entity.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

func (s *authService) signToken(user *entity.User) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
