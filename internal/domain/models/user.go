package models

// Role gates what a shop user may do.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSalesStaff Role = "SALES_STAFF"
)

// Actor identifies the user behind a request.
type Actor struct {
	Name string
	Role Role
	IP   string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
