// Package policy decides what the authenticated user may see and do, based
// solely on the role list cached in the session.
package policy

import "github.com/fixware/console/internal/core/domain"

// AccountKind is the capability tier derived once from a user's role list.
// Roles are not mutually exclusive by construction, so derivation applies a
// fixed priority: admin > client > standard. Any unrecognized combination
// falls back to KindStandard.
type AccountKind int

const (
	KindStandard AccountKind = iota
	KindClient
	KindAdmin
)

func (k AccountKind) String() string {
	switch k {
	case KindAdmin:
		return "admin"
	case KindClient:
		return "client"
	default:
		return "standard"
	}
}

// KindOf derives the account kind from the user's role list.
func KindOf(u domain.User) AccountKind {
	switch {
	case u.HasRole(domain.RoleAdmin):
		return KindAdmin
	case u.HasRole(domain.RoleClient):
		return KindClient
	default:
		return KindStandard
	}
}

// IsAdmin reports whether the user holds ROLE_ADMIN.
func IsAdmin(u domain.User) bool { return u.HasRole(domain.RoleAdmin) }

// IsClient reports whether the user holds ROLE_CLIENT.
func IsClient(u domain.User) bool { return u.HasRole(domain.RoleClient) }

// IsStandard reports whether the user holds ROLE_USER.
func IsStandard(u domain.User) bool { return u.HasRole(domain.RoleUser) }

// CanAccessAdminPanel gates the admin screens (user, product and payment
// management).
func CanAccessAdminPanel(u domain.User) bool { return IsAdmin(u) }

// CanAccessAllOrders gates the unscoped order listing.
func CanAccessAllOrders(u domain.User) bool { return IsAdmin(u) }

// CanManageOrders gates order creation and editing.
func CanManageOrders(u domain.User) bool { return IsAdmin(u) || IsClient(u) }

// CanOnlyViewOwnOrders reports whether order queries must be scoped to the
// user's own ID.
func CanOnlyViewOwnOrders(u domain.User) bool { return IsStandard(u) || IsClient(u) }
