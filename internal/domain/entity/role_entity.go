package entity

// Role is the closed set of authorization roles carried by a User.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleEditor    Role = "editor"
)

// ParseRole normalizes and validates a role string. Empty input defaults to
// member; unknown values report ok=false.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleMember, true
	case RoleAdmin, RoleMember, RoleModerator, RoleEditor:
		return Role(s), true
	default:
		return "", false
	}
}

// Elevated reports whether the role grants back-office access.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleEditor
}
