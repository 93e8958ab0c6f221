// authz models the capability check that guards mutations. The concrete
// policy is supplied at composition time; the core only branches on the
// Decision it hands back.
package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Role of an authenticated principal, as asserted by the authentication
// collaborator upstream of us.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// RoleFromString maps a wire string to a Role, defaulting unknown values to
// member so that a missing or garbled role header never escalates rights.
func RoleFromString(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	default:
		return RoleMember
	}
}

// Principal is an already-authenticated identity. Credential validation
// happens elsewhere; by the time a Principal reaches the core it is trusted.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

type Decision int

const (
	Denied Decision = iota
	Owner
	Admin
)

// Authorizer decides whether a principal may mutate a record owned by
// ownerID. Implementations must not touch storage; they are consulted before
// any write happens.
type Authorizer interface {
	Check(ctx context.Context, principal Principal, ownerID uuid.UUID) Decision
}

// PermitAll is the composition-time default policy: admins get Admin,
// everyone else gets Owner. It never denies, mirroring the current
// always-succeeds ownership rule; swap in a real Authorizer to tighten it.
type PermitAll struct{}

func (p PermitAll) Check(ctx context.Context, principal Principal, ownerID uuid.UUID) Decision {
	if principal.Role == RoleAdmin {
		return Admin
	}
	return Owner
}

// Forbidden is returned when the acting principal lacks rights over the
// target record.
type Forbidden struct {
	Subject uuid.UUID
}

func (f Forbidden) Error() string {
	return fmt.Sprintf("Principal [%v] is not allowed to perform this operation", f.Subject)
}
