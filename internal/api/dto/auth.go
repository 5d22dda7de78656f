package dto

import (
	"github.com/pathways-hq/pathways/internal/validator"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
)

type SignUpRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Name     string   `json:"name" validate:"required,max=255"`
	Roles    []string `json:"roles"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token  string   `json:"token"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

func (r *SignUpRequest) Validate() error {
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

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}
