package usecase

import (
	"context"
	"fmt"

	"github.com/iho/gotill/internal/domain"
)

// authorize checks capability for actor once per command. An empty
// capability means the command needs none.
func authorize(ctx context.Context, gate PermissionGate, actor domain.Actor, capability domain.Capability) error {
	if capability == "" {
		return nil
	}
	if gate == nil {
		return fmt.Errorf("%w: no permission gate configured", domain.ErrPermissionDenied)
	}
	ok, err := gate.HasCapability(ctx, actor, capability)
	if err != nil {
		return fmt.Errorf("permission check for %s: %w", capability, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s lacks %s", domain.ErrPermissionDenied, actor.ID, capability)
	}
	return nil
}
