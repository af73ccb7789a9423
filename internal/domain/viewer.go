package domain

import (
	"slices"
	"strings"
)

// Role is the viewing user's access class. It only narrows what the board
// shows; it is not a security boundary.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole maps a role name, including the common aliases, to its class.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "superadmin", "owner":
		return RoleAdmin, true
	case "manager", "lead":
		return RoleManager, true
	case "employee", "member":
		return RoleEmployee, true
	default:
		return "", false
	}
}

// Viewer is the externally supplied "current user" context.
type Viewer struct {
	DisplayName string
	Role        Role
	// ManagedRoster lists the assignees a manager may see.
	ManagedRoster []string
}

// CanSee reports whether a task assigned to assignee is visible to v.
// Unknown roles see nothing.
func (v Viewer) CanSee(assignee string) bool {
	switch v.Role {
	case RoleAdmin:
		return true
	case RoleManager:
		return slices.Contains(v.ManagedRoster, assignee)
	case RoleEmployee:
		return assignee == v.DisplayName
	default:
		return false
	}
}
