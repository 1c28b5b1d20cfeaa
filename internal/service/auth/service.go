package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"nexus-dashboard/internal/config"
	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/clock"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

// UserStore is the user lookup the auth service needs.
type UserStore interface {
	Authenticate(username, password string) (*domain.User, error)
	User(id string) (*domain.User, error)
	SetSessionUser(ctx context.Context, userID string) error
}

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	Logout(ctx context.Context) error
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type Claims struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	users UserStore
	cfg   *config.Config
	clock clock.Clock
}

func NewService(users UserStore, cfg *config.Config, c clock.Clock) Service {
	return &service{
		users: users,
		cfg:   cfg,
		clock: c,
	}
}

// Login checks the credentials as stored and issues an access token.
func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	user, err := s.users.Authenticate(input.Username, input.Password)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.generateToken(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.SetSessionUser(ctx, user.ID); err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *service) Logout(ctx context.Context) error {
	return s.users.SetSessionUser(ctx, "")
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.User(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *service) generateToken(user *domain.User) (*domain.TokenPair, error) {
	now := s.clock.Now()
	claims := &Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken: signed,
		ExpiresIn:   int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}
