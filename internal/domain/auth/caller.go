package auth

// Caller is the identity behind an authenticated request.
type Caller struct {
	Subject    string
	EmployeeID string
	Role       Role
}

// SelfOnly reports whether the caller may only record attendance for their own employee_id.
// Managers and admins act on behalf of others.
func (c Caller) SelfOnly() bool {
	return c.Role != RoleManager && c.Role != RoleAdmin
}
