package domain

import "time"

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User models an authenticated actor in the system.
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveRoles returns the stored roles with RoleUser always present,
// without duplicates, in stored order.
func (u *User) EffectiveRoles() []string {
	seen := make(map[string]struct{}, len(u.Roles)+1)
	out := make([]string, 0, len(u.Roles)+1)
	for _, r := range append(append([]string{}, u.Roles...), RoleUser) {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// HasRole reports whether role is among the effective roles of u.
func (u *User) HasRole(role string) bool {
	for _, r := range u.EffectiveRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// APIToken is the single active bearer credential of a user.
type APIToken struct {
	ID        uint
	UserID    uint
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the token is no longer valid at now.
func (t *APIToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
