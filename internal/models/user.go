package models

// Role is the access level of an authenticated user.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// AuthUser is the already-authenticated actor behind a request.
// Authentication itself happens in the auth package; the ledger only
// consumes the resolved identity.
type AuthUser struct {
	// ID is the user identifier ("admin" for the administrator).
	ID string `json:"id"`

	// Name is the display name used as meeting note author.
	Name string `json:"name"`

	Role Role `json:"role"`

	// MemberID links a MEMBER user to their Member record.
	MemberID string `json:"memberId,omitempty"`
}

// IsAdmin reports whether the user may mutate the ledger.
func (u AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanView reports whether the user may see data belonging to memberID.
func (u AuthUser) CanView(memberID string) bool {
	return u.IsAdmin() || (u.Role == RoleMember && u.MemberID != "" && u.MemberID == memberID)
}
