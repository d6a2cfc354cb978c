package authz

import (
	"context"

	"github.com/kbukum/blogapi/logger"
)

// Pipeline composes identity verification, role policy, and ownership
// resolution into the per-request authorization decision.
//
// The pipeline holds no mutable state; the verifier secret and the lookup
// capability are fixed at construction. Evaluations for concurrent requests
// are independent.
type Pipeline struct {
	verifier  Verifier
	ownership *OwnershipResolver
	log       *logger.Logger
}

// NewPipeline creates a Pipeline over the given verifier and lookup capability.
func NewPipeline(verifier Verifier, lookup AuthorLookup, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Pipeline{
		verifier:  verifier,
		ownership: NewOwnershipResolver(lookup),
		log:       log.WithComponent("authz"),
	}
}

// Authorize evaluates the pipeline for one request. Stages run sequentially
// and short-circuit; the ownership stage only runs when the role stage could
// not settle the outcome, so the fast-allow path never touches storage.
//
// The returned error is reserved for infrastructure faults in the lookup
// capability. Those are not authorization denials and must not be masked as
// such; callers surface them as server errors. The Identity is meaningful
// only when the decision allows.
func (p *Pipeline) Authorize(ctx context.Context, credential string, op Operation, params PathParams) (Identity, Decision, error) {
	// Stage 1: identity. Nothing runs without a verified identity.
	identity, err := p.verifier.Verify(ctx, credential)
	if err != nil {
		p.log.Debug("Credential rejected", map[string]interface{}{
			"operation": op.Name,
			"error":     err.Error(),
		})
		return Identity{}, Deny(ReasonUnauthenticated), nil
	}

	// Stage 2: role policy. An operation with no role requirement skips
	// straight to authorized.
	if !op.requiresRole() {
		return identity, Allow(), nil
	}
	if op.allowsRole(identity.Role) {
		// Under RoleOrOwnership this is the OR short-circuit: the role
		// alone is sufficient and the storage read never happens.
		return identity, Allow(), nil
	}
	if op.Ownership == OwnershipNone {
		// Role failed and there is no ownership fallback.
		p.log.Debug("Role check failed", map[string]interface{}{
			"operation": op.Name,
			"user_id":   identity.ID,
			"role":      string(identity.Role),
		})
		return identity, Deny(ReasonForbidden), nil
	}

	// Stage 3: ownership. Resolved fresh on every request.
	owns, err := p.ownership.Resolve(ctx, op.Ownership, params, identity)
	if err != nil {
		return Identity{}, Decision{}, err
	}
	if !owns {
		p.log.Debug("Ownership check failed", map[string]interface{}{
			"operation": op.Name,
			"user_id":   identity.ID,
			"ownership": op.Ownership.String(),
		})
		return identity, Deny(ReasonForbidden), nil
	}
	return identity, Allow(), nil
}
