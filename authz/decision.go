package authz

// Reason explains the terminal outcome of the pipeline for one request.
type Reason string

const (
	// ReasonAllowed means every required stage granted access.
	ReasonAllowed Reason = "ALLOWED"
	// ReasonUnauthenticated means the credential was absent, malformed,
	// expired, or carried a bad signature.
	ReasonUnauthenticated Reason = "UNAUTHENTICATED"
	// ReasonForbidden means the subject authenticated but neither role nor
	// ownership granted access. A missing resource during ownership
	// resolution also lands here (fail closed).
	ReasonForbidden Reason = "FORBIDDEN"
)

// Decision is the terminal value of one pipeline evaluation.
// It is request-local and never persisted.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns the allowed decision.
func Allow() Decision {
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

// Deny returns a denied decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
