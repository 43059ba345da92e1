package auth

import "errors"

var (
	// ErrInsufficientRole is returned when the caller's role is not in
	// the allowed set for an operation.  Handlers translate it into 403.
	ErrInsufficientRole = errors.New("insufficient permissions")
	// ErrNotOwner is returned when a user tries to act on another
	// user's records.  Admins bypass the ownership check.
	ErrNotOwner = errors.New("not resource owner")
)

// RequireRole checks that the identity holds one of the given roles.
func RequireRole(id Identity, roles ...string) error {
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return ErrInsufficientRole
}

// RequireOwner enforces the self-or-admin rule: users may only act on
// their own records, admins may act on anyone's.  It assumes id is the
// verified output of VerifyToken; callers must reject unauthenticated
// requests before consulting the policy.
func RequireOwner(id Identity, ownerID uint64) error {
	if id.UserID == ownerID || id.Role == RoleAdmin {
		return nil
	}
	return ErrNotOwner
}
