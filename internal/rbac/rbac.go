package rbac

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pathways-hq/pathways/internal/config"
)

// Role is a named bundle of entity/action grants loaded from the policy
// file. Permissions maps entity name to allowed actions.
type Role struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Permissions map[string][]string `json:"permissions"`
}

type grant struct {
	role, entity, action string
}

// RBACService answers (roles, entity, action) permission checks against the
// policy loaded at startup. It is injected into route registration; nothing
// reads authorization state from globals.
type RBACService struct {
	grants map[grant]struct{}
	roles  map[string]*Role
}

// NewRBACService loads the roles policy file named in the configuration.
func NewRBACService(cfg *config.Configuration) (*RBACService, error) {
	path := cfg.RBAC.PolicyPath
	if path == "" {
		path = "./config/rbac/roles.json"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rbac policy: %w", err)
	}

	var roles map[string]*Role
	if err := json.Unmarshal(data, &roles); err != nil {
		return nil, fmt.Errorf("failed to parse rbac policy: %w", err)
	}

	grants := make(map[grant]struct{})
	for roleID, role := range roles {
		role.ID = roleID
		for entity, actions := range role.Permissions {
			for _, action := range actions {
				grants[grant{roleID, entity, action}] = struct{}{}
			}
		}
	}

	return &RBACService{grants: grants, roles: roles}, nil
}

// HasPermission reports whether any of the actor's roles grants the action.
// An empty role list means full access so service credentials and accounts
// created before roles existed keep working.
func (s *RBACService) HasPermission(roles []string, entity, action string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if _, ok := s.grants[grant{role, entity, action}]; ok {
			return true
		}
	}
	return false
}

// ValidateRole reports whether the role exists in the policy.
func (s *RBACService) ValidateRole(roleID string) bool {
	_, ok := s.roles[roleID]
	return ok
}

// ListRoles returns every role with its metadata.
func (s *RBACService) ListRoles() []*Role {
	out := make([]*Role, 0, len(s.roles))
	for _, role := range s.roles {
		out = append(out, role)
	}
	return out
}

func (s *RBACService) GetRole(roleID string) (*Role, bool) {
	role, ok := s.roles[roleID]
	return role, ok
}
