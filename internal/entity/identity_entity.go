package entity

// Role is the department role assigned to an identity. Roles are a closed
// enumeration declared in the access config; the authorization policy must be
// total over them.
type Role string

const (
	RoleFinance     Role = "finance"
	RoleMarketing   Role = "marketing"
	RoleHR          Role = "hr"
	RoleEngineering Role = "engineering"
	RoleEmployee    Role = "employee"
)

// Identity is an authenticated user. Built from the static credential table at
// process start, immutable for the process lifetime. The secret never leaves
// the credential store.
type Identity struct {
	Username string
	Role     Role
}
