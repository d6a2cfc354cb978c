// Package authz implements the request authorization pipeline that guards
// every protected blogapi operation.
//
// A request passes through at most three stages, in order:
//
//  1. Identity verification: the bearer credential is validated and exchanged
//     for an Identity (user id + role). Failure stops the pipeline with an
//     unauthenticated decision; no later stage runs.
//  2. Role policy: the identity's role is checked for membership in the
//     operation's required role set. An empty set means no role restriction.
//  3. Ownership: for operations that are also reachable by the resource owner,
//     the referenced post/comment/user is resolved and its author id compared
//     to the identity. A missing resource denies rather than erroring.
//
// Each operation registers an Operation descriptor up front; the descriptor,
// not handler naming conventions, decides which ownership rule applies. When
// the combinator is RoleOrOwnership a successful role check short-circuits,
// so the ownership lookup (one storage read) only happens when the role check
// alone did not grant access.
//
// All values involved (Identity, Decision) are request-scoped and never cached
// or shared between requests.
package authz
