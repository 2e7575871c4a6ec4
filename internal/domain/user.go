package domain

import "errors"

// Role represents a staff member's access level at the till
type Role string

const (
	// RoleAdmin has every capability
	RoleAdmin Role = "admin"

	// RoleManager supervises shifts and may move cash out of the drawer
	RoleManager Role = "manager"

	// RoleCashier runs the drawer: counts and closes, no withdrawals
	RoleCashier Role = "cashier"

	// RoleViewer can only read shift history
	RoleViewer Role = "viewer"
)

// Capability is a single permission checked before a command mutates anything.
type Capability string

const (
	CapabilityWithdraw         Capability = "canWithdraw"
	CapabilityRecount          Capability = "canRecount"
	CapabilityClose            Capability = "canClose"
	CapabilityViewShiftReports Capability = "canViewShiftReports"
)

// CapabilitySet is the set of capabilities granted to an actor.
type CapabilitySet map[Capability]bool

// Has reports whether c is granted.
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

var roleCapabilities = map[Role]CapabilitySet{
	RoleAdmin: {
		CapabilityWithdraw:         true,
		CapabilityRecount:          true,
		CapabilityClose:            true,
		CapabilityViewShiftReports: true,
	},
	RoleManager: {
		CapabilityWithdraw:         true,
		CapabilityRecount:          true,
		CapabilityClose:            true,
		CapabilityViewShiftReports: true,
	},
	RoleCashier: {
		CapabilityRecount: true,
		CapabilityClose:   true,
	},
	RoleViewer: {
		CapabilityViewShiftReports: true,
	},
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Capabilities returns the capabilities granted to r. Unknown roles get none.
func (r Role) Capabilities() CapabilitySet {
	return roleCapabilities[r]
}

// Actor is the authenticated staff member issuing a command.
type Actor struct {
	ID   string
	Role Role
}

// Validate requires an identified actor.
func (a Actor) Validate() error {
	return ValidateRequired("actor", a.ID)
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
