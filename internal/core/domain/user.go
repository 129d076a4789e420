package domain

// Authority labels form a fixed closed set; there is no backend enumeration
// endpoint, so the catalog below is the single source of truth.
const (
	RoleAdmin  = "ROLE_ADMIN"
	RoleUser   = "ROLE_USER"
	RoleClient = "ROLE_CLIENT"
)

// Role is an authority label granting a capability tier.
type Role struct {
	ID        int64  `json:"id"`
	Authority string `json:"authority"`
}

// StaticRoles returns the known role catalog.
func StaticRoles() []Role {
	return []Role{
		{ID: 1, Authority: RoleAdmin},
		{ID: 2, Authority: RoleUser},
		{ID: 3, Authority: RoleClient},
	}
}

// User models an actor in the system. The authenticated user's profile is
// cached in the session after login.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Roles     []Role `json:"roles"`
}

// FullName returns "FirstName LastName".
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether the user's role list contains the given authority.
func (u User) HasRole(authority string) bool {
	for _, r := range u.Roles {
		if r.Authority == authority {
			return true
		}
	}
	return false
}
