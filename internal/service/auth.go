package service

import (
	"context"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/auth"
	"github.com/pathways-hq/pathways/internal/domain/user"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
)

// AuthService handles user signup and login against the internal
// authentication provider.
type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	ServiceParams
	authProvider auth.Provider
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
		authProvider:  auth.NewProvider(params.Config),
	}
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.UserRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ierr.NewError("user already exists").
			WithHintf("A user with email %s already exists", req.Email).
			Mark(ierr.ErrAlreadyExists)
	} else if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{types.RoleViewer}
	}

	authResp, err := s.authProvider.SignUp(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	}, roles)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		ID:           authResp.ID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: authResp.PasswordHash,
		Roles:        roles,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	// New users are stamped as their own creator
	u.CreatedBy = u.ID
	u.UpdatedBy = u.ID

	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeUser, u.ID, types.ActivityActionCreated, map[string]any{
		"email": u.Email,
		"roles": roles,
	})

	return &dto.AuthResponse{
		Token:  authResp.AuthToken,
		UserID: u.ID,
		Email:  u.Email,
		Roles:  roles,
	}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid credentials").
				WithHint("Invalid email or password").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, err
	}

	authResp, err := s.authProvider.Login(ctx, auth.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	}, u.ID, u.PasswordHash, u.Roles)
	if err != nil {
		return nil, ierr.NewError("invalid credentials").
			WithHint("Invalid email or password").
			Mark(ierr.ErrPermissionDenied)
	}

	return &dto.AuthResponse{
		Token:  authResp.AuthToken,
		UserID: u.ID,
		Email:  u.Email,
		Roles:  u.Roles,
	}, nil
}
