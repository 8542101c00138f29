package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Valid reports whether the role is one of the three known tiers.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleViewer
}

// Account represents an authentication identity (the "auth" side of a user).
// It is kept separate from the User profile row so that provisioning can
// roll back the account when the profile insert fails.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"` // Should be unique
	PasswordHash string    `json:"-"`     // Never expose this via JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// User represents a profile row in the system (Owner, Admin or Viewer).
// User.ID always equals the ID of the backing Account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	// OwnerID references the owner whose workspace this user belongs to.
	// Nil only for owners themselves; admins and viewers always have it set.
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// WorkspaceID returns the owner id that scopes all of this user's data:
// the user's own id for owners, the referenced owner otherwise.
func (u *User) WorkspaceID() uuid.UUID {
	if u.Role == RoleOwner || u.OwnerID == nil {
		return u.ID
	}
	return *u.OwnerID
}

func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// Capabilities is the set of permission booleans derived from a role.
// It is computed in exactly one place (CapabilitiesFor) and consumed by
// route guards and handlers instead of re-deriving role comparisons.
type Capabilities struct {
	IsOwner        bool `json:"isOwner"`
	IsAdmin        bool `json:"isAdmin"`
	IsViewer       bool `json:"isViewer"`
	CanEdit        bool `json:"canEdit"`
	CanManageUsers bool `json:"canManageUsers"`
}

// CapabilitiesFor derives the permission set for a role. An unknown or
// empty role yields no capabilities at all.
func CapabilitiesFor(role Role) Capabilities {
	caps := Capabilities{
		IsOwner:  role == RoleOwner,
		IsAdmin:  role == RoleAdmin,
		IsViewer: role == RoleViewer,
	}
	caps.CanEdit = caps.IsOwner
	caps.CanManageUsers = caps.IsOwner || caps.IsAdmin
	return caps
}

// Capabilities returns the permission set for this user. A nil user
// (unauthenticated) has no capabilities.
func (u *User) Capabilities() Capabilities {
	if u == nil {
		return Capabilities{}
	}
	return CapabilitiesFor(u.Role)
}
