package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pathways-hq/pathways/internal/config"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// Claims carries the authenticated identity extracted from a token
type Claims struct {
	UserID string
	Roles  []string
}

// AuthRequest is the input to signup and login
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResponse is the output of signup and login
type AuthResponse struct {
	ID           string
	PasswordHash string
	AuthToken    string
}

// Provider abstracts the authentication backend
type Provider interface {
	GetProvider() types.AuthProvider
	SignUp(ctx context.Context, req AuthRequest, roles []string) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userID, passwordHash string, roles []string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

type internalAuth struct {
	AuthConfig config.AuthConfig
}

// NewProvider builds the configured authentication provider
func NewProvider(cfg *config.Configuration) Provider {
	return &internalAuth{
		AuthConfig: cfg.Auth,
	}
}

func (a *internalAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderInternal
}

func (a *internalAuth) SignUp(ctx context.Context, req AuthRequest, roles []string) (*AuthResponse, error) {
	if req.Password == "" {
		return nil, ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}

	userID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER)

	authToken, err := a.generateToken(userID, roles)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &AuthResponse{
		ID:           userID,
		PasswordHash: string(hashedPassword),
		AuthToken:    authToken,
	}, nil
}

func (a *internalAuth) Login(ctx context.Context, req AuthRequest, userID, passwordHash string, roles []string) (*AuthResponse, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return nil, ierr.NewError("invalid password").
			WithHint("Invalid password").
			Mark(ierr.ErrValidation)
	}

	authToken, err := a.generateToken(userID, roles)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &AuthResponse{
		ID:           userID,
		PasswordHash: passwordHash,
		AuthToken:    authToken,
	}, nil
}

func (a *internalAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(a.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	var roles []string
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return &Claims{UserID: userID, Roles: roles}, nil
}

func (a *internalAuth) generateToken(userID string, roles []string) (string, error) {
	// 30 day expiration
	expiration := time.Now().Add(30 * 24 * time.Hour)

	claims := jwt.MapClaims{
		"user_id": userID,
		"roles":   roles,
		"exp":     expiration.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.AuthConfig.Secret))
}
