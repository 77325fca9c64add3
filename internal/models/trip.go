package models

// MemberRole is a member's role within a trip.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// TripMember associates a user with a trip and a role.
type TripMember struct {
	UserID string
	Role   MemberRole
}

// Trip represents a group of members sharing expenses.
// The ledger only consumes the roster and the membership predicates;
// everything else about trips lives outside the expense engine.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string

	// CreatedBy is the user who created the trip. They are always an admin.
	CreatedBy string

	// Members is the trip roster in join order.
	Members []TripMember

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// IsMember reports whether the user belongs to the trip.
func (t *Trip) IsMember(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user is a trip admin.
func (t *Trip) IsAdmin(userID string) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return m.Role == RoleAdmin
		}
	}
	return false
}

// MemberIDs returns the roster user IDs in join order.
func (t *Trip) MemberIDs() []string {
	ids := make([]string, len(t.Members))
	for i, m := range t.Members {
		ids[i] = m.UserID
	}
	return ids
}
