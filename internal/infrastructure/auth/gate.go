package auth

import (
	"context"

	"github.com/iho/gotill/internal/domain"
)

// RoleGate implements usecase.PermissionGate from the actor's role. Grants
// adds capabilities on top of the built-in role sets.
type RoleGate struct {
	grants map[domain.Role]domain.CapabilitySet
}

// NewRoleGate creates a RoleGate. grants may be nil.
func NewRoleGate(grants map[domain.Role][]domain.Capability) *RoleGate {
	g := &RoleGate{grants: make(map[domain.Role]domain.CapabilitySet, len(grants))}
	for role, caps := range grants {
		set := make(domain.CapabilitySet, len(caps))
		for _, c := range caps {
			set[c] = true
		}
		g.grants[role] = set
	}
	return g
}

// HasCapability reports whether actor's role grants capability.
func (g *RoleGate) HasCapability(_ context.Context, actor domain.Actor, capability domain.Capability) (bool, error) {
	if actor.Role.Capabilities().Has(capability) {
		return true, nil
	}
	return g.grants[actor.Role].Has(capability), nil
}
