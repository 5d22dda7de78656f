package types

// AuthProvider identifies the authentication backend
type AuthProvider string

const (
	// AuthProviderInternal issues and verifies JWTs signed with the
	// configured secret and stores bcrypt password hashes locally.
	AuthProviderInternal AuthProvider = "internal"
)

// UserRole names used by the authorization policy
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleInstructor  = "instructor"
	RoleViewer      = "viewer"
)

// KnownRoles is the closed set of assignable roles
var KnownRoles = []string{
	RoleAdmin,
	RoleCoordinator,
	RoleInstructor,
	RoleViewer,
}
