package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/config"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/model"
)

var (
	ErrAdminExists        = errors.New("admin already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserCatalog is the database-backed account store.
type UserCatalog interface {
	CreateUser(ctx context.Context, u model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	AdminExists(ctx context.Context) (bool, error)
}

// AuthService handles the single-admin login: bcrypt passwords, HS256
// access tokens.
type AuthService struct {
	catalog UserCatalog
	secret  []byte
	expiry  time.Duration
}

func NewAuthService(catalog UserCatalog, cfg *config.Config) *AuthService {
	return &AuthService{
		catalog: catalog,
		secret:  []byte(cfg.JWTSecret),
		expiry:  cfg.TokenExpiry,
	}
}

// Register creates the admin account. Open only while no account exists.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	exists, err := s.catalog.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ErrAdminExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.catalog.CreateUser(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Login checks the credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.catalog.GetUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken verifies a token and returns the user id it carries.
func (s *AuthService) ParseToken(tokenStr string) (int64, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(userID), nil
}
