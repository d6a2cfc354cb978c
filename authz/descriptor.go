package authz

import "fmt"

// OwnershipCheck selects which ownership rule, if any, applies to an operation.
type OwnershipCheck int

const (
	// OwnershipNone means the operation has no ownership rule. This is the
	// default: an operation that configures no rule is never implicitly
	// treated as owned.
	OwnershipNone OwnershipCheck = iota
	// OwnershipUserIDParam holds when the identity's id equals the "id" path
	// parameter. No storage lookup is involved.
	OwnershipUserIDParam
	// OwnershipPostAuthor holds when the identity authored the post named by
	// the "postId" path parameter.
	OwnershipPostAuthor
	// OwnershipCommentAuthor holds when the identity authored the comment
	// named by the "id" path parameter.
	OwnershipCommentAuthor
)

// String returns the ownership check name for logging.
func (o OwnershipCheck) String() string {
	switch o {
	case OwnershipNone:
		return "none"
	case OwnershipUserIDParam:
		return "user_id_param"
	case OwnershipPostAuthor:
		return "post_author"
	case OwnershipCommentAuthor:
		return "comment_author"
	default:
		return fmt.Sprintf("ownership(%d)", int(o))
	}
}

// Combinator selects how the role and ownership results combine.
type Combinator int

const (
	// RoleOnly: the role check alone decides.
	RoleOnly Combinator = iota
	// RoleOrOwnership: a passing role check grants access immediately;
	// a failing one falls through to the ownership check.
	RoleOrOwnership
)

// Operation describes the authorization requirements of one protected
// endpoint. Descriptors are built once at route registration and never
// mutated afterwards.
type Operation struct {
	// Name identifies the operation in logs, e.g. "posts.update".
	Name string
	// Roles is the set of roles allowed through the role check.
	// Empty means no role restriction.
	Roles []Role
	// Ownership selects the ownership rule for this operation.
	Ownership OwnershipCheck
	// Combinator selects how role and ownership results combine.
	Combinator Combinator
}

// Validate checks the descriptor invariant: an ownership rule is only
// meaningful under a combinator that can consult it.
func (op Operation) Validate() error {
	if op.Ownership != OwnershipNone && op.Combinator == RoleOnly {
		return fmt.Errorf("authz: operation %q declares an ownership check with a role-only combinator", op.Name)
	}
	return nil
}

// requiresRole reports whether the operation restricts by role at all.
func (op Operation) requiresRole() bool {
	return len(op.Roles) > 0
}

// allowsRole reports whether role is a member of the operation's role set.
// Strict set membership; an empty set allows every role.
func (op Operation) allowsRole(role Role) bool {
	if !op.requiresRole() {
		return true
	}
	for _, r := range op.Roles {
		if r == role {
			return true
		}
	}
	return false
}
