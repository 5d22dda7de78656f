package service

import (
	"context"

	"github.com/pathways-hq/pathways/internal/api/dto"
	"github.com/pathways-hq/pathways/internal/types"
)

// UserService manages user accounts and role assignments.
type UserService interface {
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error)
}

type userService struct {
	ServiceParams
}

func NewUserService(params ServiceParams) UserService {
	return &userService{ServiceParams: params}
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.UserResponse{User: u}, nil
}

func (s *userService) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	return s.GetUser(ctx, types.GetUserID(ctx))
}

func (s *userService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Roles != nil {
		u.Roles = req.Roles
	}

	if err := s.UserRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, entityTypeUser, u.ID, types.ActivityActionUpdated, map[string]any{
		"roles": []string(u.Roles),
	})

	return &dto.UserResponse{User: u}, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.UserRepo.Get(ctx, id); err != nil {
		return err
	}
	if err := s.UserRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishActivity(ctx, entityTypeUser, id, types.ActivityActionDeleted, nil)
	return nil
}

func (s *userService) ListUsers(ctx context.Context, filter *types.UserFilter) (*dto.ListUsersResponse, error) {
	if filter == nil {
		filter = types.NewUserFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.UserRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		items[i] = &dto.UserResponse{User: u}
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}
