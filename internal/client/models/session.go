// Package models holds the records exchanged with the banking backend and
// the helpers that format them for display.
package models

import "strings"

// Role selects one of the three dashboards.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleTeller   Role = "teller"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleCustomer, RoleTeller}

// StorageKey is the local store key holding the role's session record.
func (r Role) StorageKey() string {
	switch r {
	case RoleAdmin:
		return "adminSession"
	case RoleTeller:
		return "tellerSession"
	default:
		return "authUser"
	}
}

// Title is the fallback display name for the role.
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RoleTeller:
		return "Teller"
	default:
		return "Customer"
	}
}

// Valid reports whether r is one of Roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Session is the identity payload returned by a role login.
type Session struct {
	UserID     int64  `json:"userId"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	BranchName string `json:"branchName,omitempty"`
	BranchID   *int64 `json:"branchId,omitempty"`
}

// FullName joins the non-empty name parts.
func (s *Session) FullName() string {
	if s == nil {
		return ""
	}
	return joinNonEmpty(" ", s.FirstName, s.LastName)
}

// DisplayName falls back from the full name to the email and then to the
// role title.
func (s *Session) DisplayName(role Role) string {
	if name := s.FullName(); name != "" {
		return name
	}
	if s != nil && s.Email != "" {
		return s.Email
	}
	return role.Title()
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
