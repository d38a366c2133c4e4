package domain

import "time"

// UserRole defines the role of a user within the marketplace.
type UserRole string

const (
	RoleTrader UserRole = "TRADER"
	RoleAdmin  UserRole = "ADMIN"
)

// Capability is a closed set of actions a user may perform, derived from the role.
// Checked at the service boundary rather than carried around as permission strings.
type Capability uint16

const (
	CapPostRequest Capability = 1 << iota
	CapPlaceOffer
	CapSettle
	CapChat
	CapManageCurrencies
	CapViewAuditLog
)

var roleCapabilities = map[UserRole]Capability{
	RoleTrader: CapPostRequest | CapPlaceOffer | CapSettle | CapChat,
	RoleAdmin:  CapPostRequest | CapPlaceOffer | CapSettle | CapChat | CapManageCurrencies | CapViewAuditLog,
}

// Capabilities returns the capability set for the role. Unknown roles get nothing.
func (r UserRole) Capabilities() Capability {
	return roleCapabilities[r]
}

// Can reports whether the role includes the given capability.
func (r UserRole) Can(c Capability) bool {
	return r.Capabilities()&c == c
}

// User represents a user of the marketplace in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	DeletedAt              *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}
