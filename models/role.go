package models

// Role classifies a requester for authorization purposes
type Role int

const (
	RoleAnonymous Role = iota
	RoleEmployee
	RoleAdministrator
)

// String returns the readable name of the role
func (r Role) String() string {
	switch r {
	case RoleEmployee:
		return "employee"
	case RoleAdministrator:
		return "administrator"
	default:
		return "anonymous"
	}
}

// Operation identifies an authorizable action
type Operation int

const (
	OpViewDashboard Operation = iota
	OpAddEntry
	OpListEmployees
	OpViewTimesheet
	OpExportTimesheet
	OpDeleteTimesheet
	OpSubmitAccessRequest
)

// accessRule defines which roles may perform an operation. SelfAllowed grants
// the operation to an employee acting on their own records.
type accessRule struct {
	Roles       []Role
	SelfAllowed bool
}

// accessRules is the single authorization table for all operations
var accessRules = map[Operation]accessRule{
	OpViewDashboard:       {Roles: []Role{RoleEmployee, RoleAdministrator}},
	OpAddEntry:            {Roles: []Role{RoleEmployee, RoleAdministrator}},
	OpListEmployees:       {Roles: []Role{RoleAdministrator}},
	OpViewTimesheet:       {Roles: []Role{RoleAdministrator}},
	OpExportTimesheet:     {Roles: []Role{RoleAdministrator}, SelfAllowed: true},
	OpDeleteTimesheet:     {Roles: []Role{RoleAdministrator}},
	OpSubmitAccessRequest: {Roles: []Role{RoleAnonymous}},
}

// Allowed reports whether the user (nil for anonymous) may perform the
// operation. targetID is the owning user of the affected records; pass 0
// when the operation has no target.
func Allowed(u *User, op Operation, targetID int) bool {
	rule, ok := accessRules[op]
	if !ok {
		return false
	}

	if rule.SelfAllowed && u != nil && u.ID == targetID {
		return true
	}

	role := u.Role()
	for _, r := range rule.Roles {
		if r == role {
			return true
		}
	}

	return false
}
