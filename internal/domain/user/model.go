package user

import (
	"github.com/lib/pq"
	"github.com/pathways-hq/pathways/internal/types"
)

// User represents an operator of the system
type User struct {
	ID           string         `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	Name         string         `db:"name" json:"name"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Roles        pq.StringArray `db:"roles" json:"roles"`
	types.BaseModel
}
