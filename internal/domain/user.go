package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMemberName is used when a member is registered without a name.
const DefaultMemberName = "Anonymous User"

// User is a library member: either a librarian or a borrower.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      UserRole
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the member may take new loans.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLibrarian reports whether the member has librarian privileges.
func (u *User) IsLibrarian() bool {
	return u.Role == UserRoleLibrarian
}

// UserSummary is the member projection embedded in loans and fines.
type UserSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// UserFilter narrows a member listing.
type UserFilter struct {
	// Search matches name or email, case-insensitively.
	Search string
}

// AuditRecord is an append-only log entry for a mutation.
// UserID is nil for mutations made by the system (e.g. the fine sweep).
type AuditRecord struct {
	ID         uuid.UUID
	UserID     *uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
