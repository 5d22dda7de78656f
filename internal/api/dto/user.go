package dto

import (
	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/user"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

type UpdateUserRequest struct {
	Name  *string  `json:"name" validate:"omitempty,max=255"`
	Roles []string `json:"roles"`
}

type UserResponse struct {
	*user.User
}

// ListUsersResponse represents the response for listing users
type ListUsersResponse = types.ListResponse[*UserResponse]

func (r *UpdateUserRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for _, role := range r.Roles {
		if !lo.Contains(types.KnownRoles, role) {
			return ierr.NewError("unknown role").
				WithHintf("Role %s is not recognized", role).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
